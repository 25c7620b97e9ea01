package resolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/splc-lang/splc/internal/resolve"
)

func TestResolve_DefaultStepAndBasicLines(t *testing.T) {
	lines := []string{"main_x = 42", "PRINT main_x", "STOP"}
	out := resolve.Resolve(lines, 0)
	assert.Equal(t, "10 main_x = 42\n20 PRINT main_x\n30 STOP\n", out)
}

func TestResolve_ConfigurableStep(t *testing.T) {
	lines := []string{"STOP"}
	out := resolve.Resolve(lines, 5)
	assert.Equal(t, "5 STOP\n", out)
}

func TestResolve_LabelsRewrittenInGotoAndIf(t *testing.T) {
	lines := []string{
		"t1 = main_x > 0",
		"IF t1 = 1 THEN L1",
		"GOTO L2",
		"REM L1",
		"PRINT main_x",
		"REM L2",
	}
	out := resolve.Resolve(lines, 10)
	expected := "10 t1 = main_x > 0\n" +
		"20 IF t1 = 1 THEN 40\n" +
		"30 GOTO 60\n" +
		"40 REM L1\n" +
		"50 PRINT main_x\n" +
		"60 REM L2\n"
	assert.Equal(t, expected, out)
}

func TestResolve_RemLinesKeptVerbatim(t *testing.T) {
	lines := []string{"REM L1", "STOP"}
	out := resolve.Resolve(lines, 10)
	assert.Equal(t, "10 REM L1\n20 STOP\n", out)
}

func TestResolve_BackwardJumpForLoops(t *testing.T) {
	lines := []string{
		"REM L1",
		"t1 = main_c > 5",
		"IF t1 = 1 THEN L2",
		"GOTO L3",
		"REM L2",
		"GOTO L1",
		"REM L3",
	}
	out := resolve.Resolve(lines, 10)
	expected := "10 REM L1\n" +
		"20 t1 = main_c > 5\n" +
		"30 IF t1 = 1 THEN 50\n" +
		"40 GOTO 70\n" +
		"50 REM L2\n" +
		"60 GOTO 10\n" +
		"70 REM L3\n"
	assert.Equal(t, expected, out)
}
