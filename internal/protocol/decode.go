package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"

	"invaderdeck/internal/engine"
)

var (
	ErrUnknownType    = errors.New("unknown message type")
	ErrInvalidPayload = errors.New("invalid payload")
)

// Validate checks a client message against its schema and returns the
// decoded payload document.
func Validate(env Envelope) (map[string]interface{}, error) {
	schema, ok := schemas[env.Type]
	if !ok {
		return nil, fmt.Errorf("%q: %w", env.Type, ErrUnknownType)
	}

	var doc interface{} = map[string]interface{}{}
	if len(env.Payload) > 0 && string(env.Payload) != "null" {
		if err := json.Unmarshal(env.Payload, &doc); err != nil {
			return nil, fmt.Errorf("%s: %w: %v", env.Type, ErrInvalidPayload, err)
		}
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", env.Type, ErrInvalidPayload, err)
	}
	return doc.(map[string]interface{}), nil
}

// Decode validates a client message and turns it into an engine action.
func Decode(env Envelope) (engine.Action, error) {
	doc, err := Validate(env)
	if err != nil {
		return engine.Action{}, err
	}

	action := engine.Action{Type: engine.ActionType(env.Type)}
	switch env.Type {
	case MsgRelocate:
		var msg RelocateMsg
		if err := decodeInto(doc, &msg); err != nil {
			return engine.Action{}, fmt.Errorf("%s: %w", env.Type, err)
		}
		action.Card, action.Pile = msg.Card, msg.Pile

	case MsgNewGame:
		if len(doc) == 0 {
			break
		}
		var msg NewGameMsg
		if err := decodeInto(doc, &msg); err != nil {
			return engine.Action{}, fmt.Errorf("%s: %w", env.Type, err)
		}
		action.Config = &engine.NationConfig{Nation: msg.Nation, Level: msg.Level}

	case MsgEventCard:
		var msg EventCardMsg
		if err := decodeInto(doc, &msg); err != nil {
			return engine.Action{}, fmt.Errorf("%s: %w", env.Type, err)
		}
		action.Event, action.Card = msg.Event, msg.Card
	}
	return action, nil
}

func decodeInto(doc map[string]interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  wireNameHook(),
		Result:      out,
		TagName:     "json",
		ErrorUnused: true,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return nil
}

var (
	cardType   = reflect.TypeOf(engine.Card(0))
	pileType   = reflect.TypeOf(engine.PileName(0))
	nationType = reflect.TypeOf(engine.Nation(0))
)

// wireNameHook turns wire names into the engine's enum values.
func wireNameHook() mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String {
			return data, nil
		}
		s := reflect.ValueOf(data).String()
		switch to {
		case cardType:
			return engine.ParseCard(s)
		case pileType:
			return engine.ParsePile(s)
		case nationType:
			return engine.ParseNation(s)
		}
		return data, nil
	}
}
