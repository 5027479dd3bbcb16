package core

import (
	"fmt"
	"strings"

	"healbot/internal/llm"
	"healbot/pkg"
)

// Assembler builds the conversation context handed to the language model
// for one reply. Implementations must preserve transcript order exactly
// and place the newly arriving patient message last. The instruction
// template is never rewritten; context is inserted around it.
type Assembler interface {
	Assemble(rec *pkg.PatientRecord, summary string, transcript []pkg.Turn, message string) []llm.Message
}

// MessageAssembler emits discrete role-tagged messages: the instruction
// template as a system message, optionally a second system message with
// the profile summary and a first-contact greeting instruction, then the
// transcript turn by turn, then the new patient message. The welcome
// context appears only when the transcript is empty and a record exists,
// matching a returning patient's first contact.
type MessageAssembler struct{}

func (MessageAssembler) Assemble(rec *pkg.PatientRecord, summary string, transcript []pkg.Turn, message string) []llm.Message {
	msgs := make([]llm.Message, 0, len(transcript)+3)
	msgs = append(msgs, llm.Message{Role: llm.RoleSystem, Content: SystemPrompt})

	if len(transcript) == 0 && rec != nil {
		name := rec.Name
		if name == "" {
			name = "there"
		}
		msgs = append(msgs, llm.Message{
			Role:    llm.RoleSystem,
			Content: fmt.Sprintf(welcomeContextTemplate, name, summary),
		})
	}

	for _, turn := range transcript {
		msgs = append(msgs, llm.Message{Role: turnRole(turn.Role), Content: turn.Content})
	}

	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: message})
	return msgs
}

// TranscriptAssembler flattens everything into one text block for
// completion-style models: the instruction template, the profile summary
// under a context header, the transcript as labeled lines, the new
// patient message, and a trailing cue for the assistant's turn. The block
// is emitted as a single user message so both strategies satisfy the same
// interface against the chat API.
type TranscriptAssembler struct{}

func (TranscriptAssembler) Assemble(rec *pkg.PatientRecord, summary string, transcript []pkg.Turn, message string) []llm.Message {
	var b strings.Builder
	b.WriteString(SystemPrompt)

	if rec != nil && summary != "" {
		b.WriteString("\n\n")
		b.WriteString(flatContextHeader)
		b.WriteString("\n")
		b.WriteString(summary)
	}

	b.WriteString("\n")
	for _, turn := range transcript {
		fmt.Fprintf(&b, "\n%s: %s", speakerLabel(turn.Role), turn.Content)
	}
	fmt.Fprintf(&b, "\n%s: %s", patientLabel, message)
	fmt.Fprintf(&b, "\n\n%s:", assistantLabel)

	return []llm.Message{{Role: llm.RoleUser, Content: b.String()}}
}

// turnRole maps transcript roles onto the chat API's role names. Anything
// that is not the patient speaks as the assistant.
func turnRole(r pkg.Role) string {
	if r == pkg.RolePatient {
		return llm.RoleUser
	}
	return llm.RoleAssistant
}

func speakerLabel(r pkg.Role) string {
	if r == pkg.RolePatient {
		return patientLabel
	}
	return assistantLabel
}
