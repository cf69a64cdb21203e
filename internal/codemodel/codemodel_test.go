package codemodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlattenPreservesOrderAcrossHierarchy(t *testing.T) {
	model := &Codemodel{
		Configurations: []Configuration{
			{
				Name: "Debug",
				Projects: []Project{
					{Name: "root", Targets: []BuildTarget{
						{Name: "app", Kind: KindExecutable},
						{Name: "core", Kind: KindStaticLibrary},
					}},
					{Name: "vendor", Targets: []BuildTarget{
						{Name: "zlib", Kind: KindStaticLibrary},
					}},
				},
			},
			{
				Name: "Release",
				Projects: []Project{
					{Name: "root", Targets: []BuildTarget{
						{Name: "app", Kind: KindExecutable},
					}},
				},
			},
		},
	}

	catalog := model.Flatten()
	assert.Equal(t, []string{"app", "core", "zlib", "app"}, catalog.Names())
}

func TestFlattenDoesNotDeduplicateAcrossConfigurations(t *testing.T) {
	model := &Codemodel{
		Configurations: []Configuration{
			{Name: "Debug", Projects: []Project{{Targets: []BuildTarget{{Name: "app"}}}}},
			{Name: "Release", Projects: []Project{{Targets: []BuildTarget{{Name: "app"}}}}},
		},
	}
	assert.Len(t, model.Flatten(), 2)
}

func TestFlattenEmptyHierarchy(t *testing.T) {
	assert.Empty(t, (&Codemodel{}).Flatten())

	var nilModel *Codemodel
	assert.Empty(t, nilModel.Flatten())

	noTargets := &Codemodel{
		Configurations: []Configuration{{Name: "Debug", Projects: []Project{{Name: "empty"}}}},
	}
	assert.Empty(t, noTargets.Flatten())
}

func TestFlattenKeepsTargetFields(t *testing.T) {
	target := BuildTarget{
		Name:            "core",
		Kind:            KindSharedLibrary,
		SourceDirectory: "src/core",
		FileGroups: []FileGroup{
			{Language: "CXX", Sources: []string{"src/core/a.cpp"}, IncludePaths: []string{"include"}},
		},
		Artifacts: []string{"libcore.so"},
	}
	model := &Codemodel{
		Configurations: []Configuration{{Projects: []Project{{Targets: []BuildTarget{target}}}}},
	}
	catalog := model.Flatten()
	assert.Equal(t, target, catalog[0])
}

func TestTargetKindTitle(t *testing.T) {
	assert.Equal(t, "Static Library", KindStaticLibrary.Title())
	assert.Equal(t, "Executable", KindExecutable.Title())
	assert.Equal(t, "Interface Library", KindInterfaceLibrary.Title())
	assert.Equal(t, "Unknown", KindUnknown.Title())
}
