// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"io"
	"reflect"
	"unsafe"

	jsoniter "github.com/json-iterator/go"
)

// Make sure functions get run first
var json = func() jsoniter.API {
	neverEmpty := func(pointer unsafe.Pointer) bool { return false }

	jsoniter.RegisterTypeEncoderFunc(reflect.TypeOf(Message{}).String(), encodeMessage, neverEmpty)
	jsoniter.RegisterTypeDecoderFunc(reflect.TypeOf(Message{}).String(), decodeMessage)

	return jsoniter.Config{
		IndentionStep:                 0,
		MarshalFloatWith6Digits:       true,
		EscapeHTML:                    false,
		SortMapKeys:                   true,
		UseNumber:                     false,
		DisallowUnknownFields:         false,
		TagKey:                        "json",
		OnlyTaggedField:               false,
		ValidateJsonRawMessage:        false,
		ObjectFieldMustBeSimpleString: true,
		CaseSensitive:                 true,
	}.Froze()
}()

func encodeMessage(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	message := (*Message)(ptr)
	stream.WriteVal(message.messageJSON())
}

// decodeMessage reads the type and data fields in either order and decodes
// data into the registered inbound type. Unknown types become InvalidInbound.
func decodeMessage(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	message := (*Message)(ptr)

	var (
		typ  messageType
		data []byte
	)
	iter.ReadObjectCB(func(i *jsoniter.Iterator, field string) bool {
		switch field {
		case "type":
			typ = messageType(i.ReadString())
		case "data":
			data = i.SkipAndReturnBytes()
		default:
			i.Skip()
		}
		return true
	})
	if iter.Error != nil && iter.Error != io.EOF {
		return
	}

	inboundType, ok := inboundMessageTypes[typ]
	if !ok {
		message.Data = InvalidInbound{messageType: typ}
		return
	}

	in := reflect.New(inboundType)
	if len(data) > 0 {
		dataIter := iter.Pool().BorrowIterator(data)
		defer iter.Pool().ReturnIterator(dataIter)

		dataIter.ReadVal(in.Interface())
		if dataIter.Error != nil && dataIter.Error != io.EOF {
			iter.ReportError("decode "+string(typ), dataIter.Error.Error())
			return
		}
	}
	message.Data = in.Elem().Interface()
}
