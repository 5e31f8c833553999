package kinetik

import (
	"fmt"
	"reflect"
	"runtime"
)

type systemFn any

// Module wires resources and systems into the App at build time.
type Module interface {
	Install(app *App, cmd *Commands)
}

// App is the simulation driver: it owns the resource map, the staged
// system schedule and the command buffers. External collaborators only
// ever call Step and read the resulting events.
type App struct {
	stages    []Stage
	systems   map[string][]systemFn
	resources map[reflect.Type]any

	// Command buffering
	pendingAdditions []*Body
	pendingRemovals  []*Body
}

func (app *App) Commands() *Commands {
	return &Commands{app: app}
}

// Step advances the simulation by dt (clamped to the world's MaxDt),
// runs every stage once and returns the collision events produced.
// Determinism: body iteration order is stable and no wall clock is read.
func (app *App) Step(dt float64) []CollisionEvent {
	world := GetResource[World](app)
	tm := GetResource[Time](app)

	if dt < 0 {
		dt = 0
	}
	if world.MaxDt > 0 && dt > world.MaxDt {
		dt = world.MaxDt
	}
	tm.Dt = dt
	tm.Elapsed += dt

	for _, stage := range app.stages {
		for _, system := range app.systems[stage.Name] {
			app.callSystem(system)
		}
		app.FlushCommands()
	}

	events := GetResource[EventBuffer](app)
	if log := app.Logger(); log.DebugEnabled() {
		for _, e := range events.events {
			log.Debugf("event %s a=%s b=%s speed=%.1f", e.Kind, e.BodyA, e.BodyB, e.RelativeSpeed)
		}
	}
	return events.drain()
}

// World returns the world resource for direct inspection by the driver.
func (app *App) World() *World {
	return GetResource[World](app)
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}
		app.resources[resourceType.Elem()] = resource
	}
	return app
}

// GetResource fetches a resource pointer by its element type; nil when absent.
func GetResource[T any](app *App) *T {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if r, ok := app.resources[t]; ok {
		return r.(*T)
	}
	return nil
}

var typeOfCommands = reflect.TypeOf(Commands{})

func (app *App) callSystem(system systemFn) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())

	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)
		underlyingType := argType.Elem()

		if underlyingType == typeOfCommands {
			args[i] = reflect.ValueOf(&Commands{app: app})
		} else if resource, argIsResource := app.resources[underlyingType]; argIsResource {
			args[i] = reflect.ValueOf(resource)
		} else {
			msg := fmt.Sprintf("Unable to resolve System dependency.\nSystem: %s\nSystem type: %s\nDependency: %s",
				runtime.FuncForPC(systemValue.Pointer()).Name(),
				fmt.Sprint(systemType),
				fmt.Sprint(argType),
			)
			panic(msg)
		}
	}
	systemValue.Call(args)
}

func (app *App) FlushCommands() {
	if len(app.pendingAdditions) == 0 && len(app.pendingRemovals) == 0 {
		return
	}

	world := GetResource[World](app)

	// Removals first, so a body cannot be re-added and dropped in the
	// same flush by accident.
	for _, b := range app.pendingRemovals {
		world.removeBody(b.ID)
	}
	app.pendingRemovals = app.pendingRemovals[:0]

	for _, b := range app.pendingAdditions {
		world.addBody(b)
	}
	app.pendingAdditions = app.pendingAdditions[:0]
}
