package galleria

import "testing"

type mockModule struct {
	installed bool
}

func (m *mockModule) Install(app *App, commands *Commands) {
	m.installed = true
}

func TestAppBuilder_UseModule(t *testing.T) {
	builder := NewAppBuilder()
	builder.UseModule(&mockModule{})

	if len(builder.modules) != 1 {
		t.Errorf("Expected modules to contain 1 module, got %v", len(builder.modules))
	}
}

func TestAppBuilder_Build_WithModules(t *testing.T) {
	builder := NewAppBuilder()
	module := &mockModule{}
	builder.UseModule(module)

	builder.Build()

	if !module.installed {
		t.Errorf("Expected Install to be called on the module, but it was not")
	}
}

func TestAppBuilder_Build_WithMultipleModules(t *testing.T) {
	module1 := &mockModule{}
	module2 := &mockModule{}

	builder := NewAppBuilder()
	builder.UseModule(module1, module2)

	builder.Build()

	if !module1.installed {
		t.Errorf("Expected Install to be called on the module 1, but it was not")
	}
	if !module2.installed {
		t.Errorf("Expected Install to be called on the module 2, but it was not")
	}
}

func TestAppBuilder_BuildFlushesInstallCommands(t *testing.T) {
	spawned := &spawningModule{}
	app := NewAppBuilder().UseModule(spawned).Build()

	found := false
	MakeQuery1[posComp](app.Commands()).Map(func(eid EntityId, _ *posComp) bool {
		found = eid == spawned.eid
		return true
	})
	if !found {
		t.Errorf("entities spawned during Install should exist after Build")
	}
}

type spawningModule struct {
	eid EntityId
}

func (m *spawningModule) Install(app *App, cmd *Commands) {
	m.eid = cmd.AddEntity(posComp{X: 1})
}
