package kinetik

// Time is the simulation clock. It advances only through App.Step so the
// simulation stays deterministic; wall-clock time never enters the core.
type Time struct {
	Elapsed float64
	Dt      float64
}

type TimeModule struct {
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Time{})
}
