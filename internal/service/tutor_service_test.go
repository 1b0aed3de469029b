package service

import (
	"strings"
	"testing"
)

func TestBuildTutorSystemPrompt(t *testing.T) {
	t.Run("embeds context data", func(t *testing.T) {
		prompt := BuildTutorSystemPrompt(map[string]interface{}{
			"percentage": 67,
			"weakTopic":  "Cardiologia",
		})
		if !strings.Contains(prompt, `"percentage":67`) {
			t.Error("prompt should embed the percentage")
		}
		if !strings.Contains(prompt, `"weakTopic":"Cardiologia"`) {
			t.Error("prompt should embed the weak topic")
		}
	})

	t.Run("nil context degrades to empty object", func(t *testing.T) {
		prompt := BuildTutorSystemPrompt(nil)
		if !strings.Contains(prompt, "{}") {
			t.Error("nil context should render as an empty JSON object")
		}
	})

	t.Run("persona is portuguese", func(t *testing.T) {
		prompt := BuildTutorSystemPrompt(nil)
		if !strings.Contains(prompt, "português") {
			t.Error("prompt should pin the response language")
		}
	})
}
