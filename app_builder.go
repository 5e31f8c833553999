package kinetik

import (
	"reflect"
)

type AppBuilder struct {
	app     *App
	modules []Module
}

func NewAppBuilder() *AppBuilder {
	stages := []Stage{Prelude, PreUpdate, Update, PostUpdate, Finale}
	systems := make(map[string][]systemFn, len(stages))
	for _, s := range stages {
		systems[s.Name] = make([]systemFn, 0)
	}
	return &AppBuilder{app: &App{
		stages:    stages,
		systems:   systems,
		resources: make(map[reflect.Type]any),
	}}
}

func (b *AppBuilder) UseModule(modules ...Module) *AppBuilder {
	b.modules = append(b.modules, modules...)
	return b
}

func (b *AppBuilder) Build() *App {
	app := b.app
	commands := &Commands{app: app}

	for _, module := range b.modules {
		module.Install(app, commands)
	}

	return app
}
