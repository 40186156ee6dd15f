package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"invaderdeck/internal/engine"
)

const draft = "https://json-schema.org/draft/2020-12/schema"

// schemas holds the payload schema of every client message type.
var schemas = map[string]*jsonschema.Schema{
	MsgExplore:    compile(MsgExplore, emptySchema()),
	MsgRelocate:   compile(MsgRelocate, relocateSchema()),
	MsgFlipRussia: compile(MsgFlipRussia, emptySchema()),
	MsgNewGame:    compile(MsgNewGame, newGameSchema()),
	MsgEventCard:  compile(MsgEventCard, eventCardSchema()),
}

func compile(name string, schema map[string]any) *jsonschema.Schema {
	schema["$schema"] = draft
	src, err := json.Marshal(schema)
	if err != nil {
		panic(fmt.Sprintf("schema %s: %v", name, err))
	}
	return jsonschema.MustCompileString(name+".schema.json", string(src))
}

func emptySchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
	}
}

func relocateSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"card", "pile"},
		"properties": map[string]any{
			"card": map[string]any{"enum": cardNames()},
			"pile": map[string]any{"enum": pileNames()},
		},
		"additionalProperties": false,
	}
}

func newGameSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"nation": map[string]any{"enum": nationNames()},
			"level":  map[string]any{"type": "integer", "minimum": engine.MinLevel, "maximum": engine.MaxLevel},
		},
		"dependentRequired": map[string]any{
			"nation": []string{"level"},
			"level":  []string{"nation"},
		},
		"additionalProperties": false,
	}
}

func eventCardSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"event"},
		"properties": map[string]any{
			"event": map[string]any{"enum": []engine.EventKind{
				engine.EventFracturedDays, engine.EventHardWorkingSettlers,
				engine.EventRisingInterest, engine.EventVisions,
			}},
			"card": map[string]any{"enum": cardNames()},
		},
		"if": map[string]any{
			"properties": map[string]any{"event": map[string]any{"const": engine.EventFracturedDays}},
		},
		"then":                 map[string]any{"required": []string{"card"}},
		"additionalProperties": false,
	}
}

func cardNames() []string {
	var out []string
	for _, c := range engine.AllCards() {
		out = append(out, c.String())
	}
	return out
}

func pileNames() []string {
	var out []string
	for _, p := range engine.AllPiles() {
		out = append(out, p.String())
	}
	return out
}

func nationNames() []string {
	var out []string
	for _, n := range engine.AllNations() {
		out = append(out, n.String())
	}
	return out
}
