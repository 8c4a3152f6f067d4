package component

// ReloadRequest asks the game loop to re-read the running scenario. The
// file watcher and the reload key create a short-lived entity holding it.
type ReloadRequest struct {
	// Path is the changed file, empty for a manual reload.
	Path string
	// Respawn rebuilds every entity instead of only retuning live agents.
	Respawn bool
}

var ReloadRequestComponent = NewComponent[ReloadRequest]()
