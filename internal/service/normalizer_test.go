package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"text2learn_backend/internal/util"
)

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"no fence", `{"a":1}`, `{"a":1}`},
		{"leading whitespace", "  \n```json\n{}\n```  ", "{}"},
		{"fence only at start", "```json\n{\"a\":1}", `{"a":1}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StripCodeFence(tc.in))
		})
	}
}

func TestStripCodeFence_Idempotent(t *testing.T) {
	in := "```json\n{\"title\":\"Go\"}\n```"
	once := StripCodeFence(in)
	assert.Equal(t, once, StripCodeFence(once))
}

func TestDecodeModelJSON_FencedOutput(t *testing.T) {
	var out struct {
		Title string `json:"title"`
	}
	err := DecodeModelJSON("```json\n{\"title\":\"Intro to Go\"}\n```", &out)
	require.NoError(t, err)
	assert.Equal(t, "Intro to Go", out.Title)
}

func TestDecodeModelJSON_MalformedOutput(t *testing.T) {
	var out map[string]interface{}

	// 未加引号的键不是合法 JSON
	err := DecodeModelJSON("{title: Go}", &out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrMalformedOutput))
}

func TestDecodeModelJSON_EmptyOutput(t *testing.T) {
	var out map[string]interface{}
	err := DecodeModelJSON("``````", &out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrMalformedOutput))
}
