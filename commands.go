package kinetik

import "github.com/google/uuid"

type Commands struct {
	app *App
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

// AddBody queues a body for insertion at the next flush (end of the
// current stage, or immediately via App.FlushCommands during setup).
func (cmd *Commands) AddBody(body *Body) uuid.UUID {
	cmd.app.pendingAdditions = append(cmd.app.pendingAdditions, body)
	return body.ID
}

func (cmd *Commands) RemoveBody(body *Body) {
	cmd.app.pendingRemovals = append(cmd.app.pendingRemovals, body)
}

func (cmd *Commands) UseSystem(system systemScheduleBuilder) {
	cmd.app.UseSystem(system)
}
