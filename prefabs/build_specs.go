package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type SpriteComponentSpec struct {
	Image              string     `yaml:"image"`
	OriginX            float64    `yaml:"origin_x"`
	OriginY            float64    `yaml:"origin_y"`
	CenterOriginIfZero bool       `yaml:"center_origin_if_zero"`
	Tint               *YAMLColor `yaml:"tint"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

// WeightsSpec mirrors steering weights. Nil fields keep the scenario's
// value.
type WeightsSpec struct {
	Seek     *float64 `yaml:"seek"`
	Flee     *float64 `yaml:"flee"`
	Arrive   *float64 `yaml:"arrive"`
	Wander   *float64 `yaml:"wander"`
	Separate *float64 `yaml:"separate"`
	Align    *float64 `yaml:"align"`
	Cohere   *float64 `yaml:"cohere"`
}

type VehicleComponentSpec struct {
	// MaxSpeed and MaxForce override the scenario params when positive.
	MaxSpeed float64     `yaml:"max_speed"`
	MaxForce float64     `yaml:"max_force"`
	Weights  WeightsSpec `yaml:"weights"`
}

type WaypointSpec struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Label string  `yaml:"label"`
}

type WalkerComponentSpec struct {
	Speed           float64        `yaml:"speed"`
	Mode            string         `yaml:"mode"`
	Threshold       float64        `yaml:"threshold"`
	ThresholdFactor float64        `yaml:"threshold_factor"`
	ShowLabels      bool           `yaml:"show_labels"`
	AcceptInput     bool           `yaml:"accept_input"`
	Waypoints       []WaypointSpec `yaml:"waypoints"`
}

type TTLComponentSpec struct {
	Frames int `yaml:"frames"`
}
