package rewrite

import (
	"github.com/viant/mbrewrite/genai/persona"
	"github.com/viant/mbrewrite/internal/templating"
)

// SystemInstruction is sent ahead of every rewrite prompt.
const SystemInstruction = "You are a helpful assistant that rewrites messages to match different communication styles and personalities."

const promptTemplate = `Rewrite the following message so that it will be well received by a
person who is best described as ${Description}.
The rewritten message should reflect how this persona would naturally
communicate, maintaining the core meaning but adapting tone, style,
and approach to match their personality.

Original message:
${Message}

Rewritten message:`

var prompt = mustCompile(promptTemplate)

func mustCompile(tmpl string) *templating.Template {
	ret, err := templating.Compile(tmpl, "Description", "Message")
	if err != nil {
		panic(err)
	}
	return ret
}

// Prompt renders the rewrite instruction for a persona.
func Prompt(message string, p *persona.Persona) (string, error) {
	return prompt.Execute(map[string]string{
		"Description": p.Description,
		"Message":     message,
	})
}
