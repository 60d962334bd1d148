package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/ccplan/internal/core/domain"
)

func TestArtifact_Source(t *testing.T) {
	a := domain.NewSourceArtifact("lib/./base.cc")

	assert.Equal(t, "lib/base.cc", a.ExecPath())
	assert.Equal(t, "lib/base.cc", a.RootRelativePath())
	assert.Empty(t, a.Root())
	assert.True(t, a.IsSourceArtifact())
	assert.True(t, a.IsCompilable())
	assert.False(t, a.IsHeader())
	assert.Equal(t, "lib/base", a.Stem())
}

func TestArtifact_Derived(t *testing.T) {
	a := domain.NewDerivedArtifact("bazel-out/bin", "lib/_objs/base/base.pic.o")

	assert.Equal(t, "bazel-out/bin/lib/_objs/base/base.pic.o", a.ExecPath())
	assert.Equal(t, "bazel-out/bin", a.Root())
	assert.False(t, a.IsSourceArtifact())
	assert.True(t, a.IsObject())
	assert.Equal(t, ".o", a.Extension())
}

func TestArtifact_Identity(t *testing.T) {
	// The same relative path under different roots is a different file.
	src := domain.NewSourceArtifact("lib/gen.h")
	gen := domain.NewDerivedArtifact("bazel-out/genfiles", "lib/gen.h")

	assert.Equal(t, src, domain.NewSourceArtifact("lib/gen.h"))
	assert.NotEqual(t, src, gen)
	assert.True(t, gen.IsHeader())
	assert.True(t, domain.Artifact{}.IsZero())
}

func TestExecPaths(t *testing.T) {
	artifacts := domain.NewSourceArtifacts("a.h", "b/c.h")

	assert.Equal(t, []string{"a.h", "b/c.h"}, domain.ExecPaths(artifacts))
	assert.Empty(t, domain.ExecPaths(nil))
}
