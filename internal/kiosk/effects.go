package kiosk

// Effect is a request from the machine to the surrounding event loop to
// run an asynchronous operation against a collaborator. Effects form a
// closed set; a switch over the concrete types covers every case.
type Effect interface {
	effect()
}

// CompleteTask asks the loop to mark a task done in the task store.
// Outcome is reported via Machine.ResolveComplete.
type CompleteTask struct {
	TaskID string
}

// DeleteTask asks the loop to delete a task and its history.
// Outcome is reported via Machine.ResolveDelete.
type DeleteTask struct {
	TaskID string
}

// LoadHistory asks the loop to fetch completion history for a task.
// Entries arrive via Machine.SetHistory; failures via
// Machine.ResolveHistoryError.
type LoadHistory struct {
	TaskID string
}

// SaveScreenTimeout asks the loop to persist the screen timeout toggle.
// Fire and forget: the machine has already flipped its local copy.
type SaveScreenTimeout struct {
	Enabled bool
}

func (CompleteTask) effect()      {}
func (DeleteTask) effect()        {}
func (LoadHistory) effect()       {}
func (SaveScreenTimeout) effect() {}
