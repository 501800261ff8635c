// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{in: "user", want: RoleUser},
		{in: " User ", want: RoleUser},
		{in: "service", want: RoleService},
		{in: "assistant", want: RoleService},
		{in: "system", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseRole(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRole_LabelKey(t *testing.T) {
	assert.Equal(t, "app.chat.user", RoleUser.LabelKey())
	assert.Equal(t, "app.chat.assistant", RoleService.LabelKey())
	assert.True(t, RoleUser.Valid())
	assert.False(t, Role("tool").Valid())
}

func TestTurn_Preview(t *testing.T) {
	turn := Turn{Role: RoleUser, Content: "hello\n   there   world"}
	assert.Equal(t, "hello there world", turn.Preview(50))
	assert.Equal(t, "hello t...", turn.Preview(10))

	cjk := Turn{Content: "你好世界你好世界"}
	assert.Equal(t, "你好世界...", cjk.Preview(7))
}

func TestTranscript_AppendKeepsOrder(t *testing.T) {
	tr := NewTranscript("Chat History", "")
	require.True(t, tr.IsEmpty())

	tr.Append(Turn{Role: RoleUser, Content: "Hi"})
	tr.Append(Turn{Role: RoleService, Content: "Hello"})
	tr.Append(Turn{Role: RoleUser, Content: "Bye"})

	require.Equal(t, 3, tr.Len())
	assert.Equal(t, "Hi", tr.Turns[0].Content)
	assert.Equal(t, "Hello", tr.Turns[1].Content)
	assert.Equal(t, "Bye", tr.Turns[2].Content)
	assert.Equal(t, 2, tr.CountByRole(RoleUser))
	assert.Equal(t, 1, tr.CountByRole(RoleService))
}

func TestTranscript_NilIsEmpty(t *testing.T) {
	var nilTr *Transcript
	assert.Equal(t, 0, nilTr.Len())
	assert.True(t, nilTr.IsEmpty())
	assert.Equal(t, 0, nilTr.CountByRole(RoleUser))
}
