package compiler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splc-lang/splc/internal/compiler"
)

func TestCompile_S2Scenario(t *testing.T) {
	res, err := compiler.Compile(`glob { } proc { } func { } main { var { x } x = 42 ; print x }`, 0)
	require.NoError(t, err)
	assert.Equal(t, "10 main_x = 42\n20 PRINT main_x\n", res.Output)
}

func TestCompile_LexFailureReportsStage(t *testing.T) {
	_, err := compiler.Compile(`glob { } proc { } func { } main { var { } x = 00 }`, 0)
	require.Error(t, err)
	var cerr *compiler.Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, compiler.StageLex, cerr.Stage)
}

func TestCompile_ParseFailureReportsStage(t *testing.T) {
	_, err := compiler.Compile(`glob { } proc { } func { } main { var { } x = }`, 0)
	require.Error(t, err)
	var cerr *compiler.Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, compiler.StageParse, cerr.Stage)
}

func TestCompile_TypeErrorReportsStage(t *testing.T) {
	_, err := compiler.Compile(`glob { } proc { } func { } main { var { } print y }`, 0)
	require.Error(t, err)
	var cerr *compiler.Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, compiler.StageTypeCheck, cerr.Stage)
}

func TestCompile_ConfigurableStep(t *testing.T) {
	res, err := compiler.Compile(`glob { } proc { } func { } main { var { } halt }`, 5)
	require.NoError(t, err)
	assert.Equal(t, "5 STOP\n", res.Output)
}

func TestCompile_ShadowingScenario(t *testing.T) {
	res, err := compiler.Compile(`glob { x } proc { } func { } main { var { x } x = 10 }`, 0)
	require.NoError(t, err)
	assert.Equal(t, "10 main_x = 10\n", res.Output)
}

func TestCompile_UnshadowedGlobalResolvesFromMain(t *testing.T) {
	res, err := compiler.Compile(`glob { g } proc { } func { } main { var { } g = 7 ; print g }`, 0)
	require.NoError(t, err)
	assert.Equal(t, "10 global_g = 7\n20 PRINT global_g\n", res.Output)
}
