package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ninehex/nhsim/pkg/action"
	"github.com/ninehex/nhsim/pkg/model"
)

func TestCompileSourceMoveWithCount(t *testing.T) {
	cmds, err := CompileSource("move e 3")
	require.NoError(t, err)
	require.Len(t, cmds, 3)
	for _, c := range cmds {
		assert.Equal(t, action.CmdMove, c.Kind)
		assert.Equal(t, model.DirE, c.Dir)
	}
}

func TestCompileSourceQuaffWithLetter(t *testing.T) {
	cmds, err := CompileSource("quaff q")
	require.NoError(t, err)
	require.Len(t, cmds, 1)
	assert.Equal(t, action.CmdQuaff, cmds[0].Kind)
	assert.Equal(t, 'q', cmds[0].Letter)
}

func TestCompileSourceRestDefaultsToSelf(t *testing.T) {
	cmds, err := CompileSource("rest 5")
	require.NoError(t, err)
	require.Len(t, cmds, 5)
	assert.Equal(t, model.DirSelf, cmds[0].Dir)
}

func TestCompileSourceMultilineProgram(t *testing.T) {
	cmds, err := CompileSource("search\nmove n\nmove n\n")
	require.NoError(t, err)
	require.Len(t, cmds, 3)
	assert.Equal(t, action.CmdSearch, cmds[0].Kind)
	assert.Equal(t, action.CmdMove, cmds[1].Kind)
}

func TestCompileSourceBareVerbDoesNotSwallowNextLine(t *testing.T) {
	cmds, err := CompileSource("rest\ndrop a")
	require.NoError(t, err)
	require.Len(t, cmds, 2)
	assert.Equal(t, action.CmdRest, cmds[0].Kind)
	assert.Equal(t, action.CmdDrop, cmds[1].Kind)
	assert.Equal(t, 'a', cmds[1].Letter)
}

func TestCompileSourceRejectsUnknownVerb(t *testing.T) {
	_, err := CompileSource("frobnicate")
	assert.Error(t, err)
}
