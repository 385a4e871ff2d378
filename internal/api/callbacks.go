package api

// Check https://akrennmair.github.io/golang-cgo-slides/ to learn
// how this embedding works.

/*
#include "bindings.h"
*/
import "C"

import (
	"context"
	"errors"
	"fmt"
	"unsafe"

	"github.com/contractsim/simulator/types"
)

var (
	errNilStateObject     = errors.New("nil state object")
	errInvalidStateObject = errors.New("invalid state object")
)

// resolveState maps a state object back to the Go state registered for it.
func resolveState(data unsafe.Pointer) (types.Mutable, error) {
	if data == nil {
		return nil, errNilStateObject
	}
	id := uint64(*(*cu64)(data))
	st, ok := lookupHandle(id)
	if !ok {
		return nil, errInvalidStateObject
	}
	return st, nil
}

// recoverPanic turns a panic in a state backend into an error, as unwinding
// through C frames is not possible.
func recoverPanic(op string, ret **C.char) {
	if rec := recover(); rec != nil {
		log().Error().Str("op", op).Interface("panic", rec).Msg("state backend panicked")
		*ret = C.CString(fmt.Sprintf("panic in %s: %v", op, rec))
	}
}

/****** State callbacks ******/

//export cGetValue
func cGetValue(data unsafe.Pointer, key C.Bytes) (result C.BytesWithError) {
	defer func() {
		if rec := recover(); rec != nil {
			log().Error().Str("op", "get").Interface("panic", rec).Msg("state backend panicked")
			result = C.BytesWithError{error: C.CString(fmt.Sprintf("panic in get: %v", rec))}
		}
	}()

	st, err := resolveState(data)
	if err != nil {
		return C.BytesWithError{error: newCError(err)}
	}

	// key is only valid for the duration of this call, take a copy
	k := readBytes(key)
	v, err := st.GetValue(context.Background(), k)
	if err != nil {
		log().Debug().Err(err).Hex("key", k).Msg("state get failed")
		return C.BytesWithError{error: newCError(err)}
	}
	return C.BytesWithError{bytes: newCBytes(v)}
}

//export cInsertValue
func cInsertValue(data unsafe.Pointer, key C.Bytes, value C.Bytes) (ret *C.char) {
	defer recoverPanic("insert", &ret)

	st, err := resolveState(data)
	if err != nil {
		return newCError(err)
	}

	k := readBytes(key)
	v := readBytes(value)
	if err := st.Insert(context.Background(), k, v); err != nil {
		log().Debug().Err(err).Hex("key", k).Msg("state insert failed")
		return newCError(err)
	}
	return nil
}

//export cRemoveValue
func cRemoveValue(data unsafe.Pointer, key C.Bytes) (ret *C.char) {
	defer recoverPanic("remove", &ret)

	st, err := resolveState(data)
	if err != nil {
		return newCError(err)
	}

	k := readBytes(key)
	if err := st.Remove(context.Background(), k); err != nil {
		log().Debug().Err(err).Hex("key", k).Msg("state remove failed")
		return newCError(err)
	}
	return nil
}
