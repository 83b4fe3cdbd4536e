// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"reflect"
	"strings"
)

var (
	// Valid inbound message types: messageType to type
	inboundMessageTypes = make(map[messageType]reflect.Type)
	// Valid outbound message types: to messageType
	outboundMessageTypes = make(map[reflect.Type]messageType)
)

type (
	inbound interface {
		// Inbound applies the message to the session's navigator.
		Inbound(session *Session) error
	}

	outbound interface {
		// Pool returns the contents of outbound to their sync.Pool
		Pool()
	}

	Message struct {
		Data interface{}
	}

	messageJSON struct {
		Data interface{} `json:"data"`
		Type messageType `json:"type"`
	}

	messageType string
)

func uncapitalize(str string) string {
	return strings.ToLower(str[0:1]) + str[1:]
}

// typeOf names a message after its Go type, so Pan is "pan".
func typeOf(message interface{}) messageType {
	return messageType(uncapitalize(reflect.Indirect(reflect.ValueOf(message)).Type().Name()))
}

func registerInbound(inbounds ...inbound) {
	for _, in := range inbounds {
		inboundMessageTypes[typeOf(in)] = reflect.TypeOf(in)
	}
}

func registerOutbound(outbounds ...outbound) {
	for _, out := range outbounds {
		outboundMessageTypes[reflect.TypeOf(out)] = typeOf(out)
	}
}

func (message Message) messageJSON() messageJSON {
	typ := reflect.TypeOf(message.Data)

	// Outbounds are marshaled
	mType, ok := outboundMessageTypes[typ]
	if !ok {
		// Panic because outbounds only come from trusted sources
		panic("invalid outbound message type " + typ.String())
	}

	return messageJSON{Data: message.Data, Type: mType}
}
