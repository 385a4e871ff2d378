package api

/*
#include "bindings.h"

// imports (state)
BytesWithError cGetValue(void* data, Bytes key);
char* cInsertValue(void* data, Bytes key, Bytes value);
char* cRemoveValue(void* data, Bytes key);

// Gateway functions (state)
BytesWithError cGetValue_cgo(void* data, Bytes key) {
	return cGetValue(data, key);
}
char* cInsertValue_cgo(void* data, Bytes key, Bytes value) {
	return cInsertValue(data, key, value);
}
char* cRemoveValue_cgo(void* data, Bytes key) {
	return cRemoveValue(data, key);
}
*/
import "C"

// We need these gateway functions to take the address of the exported Go
// callbacks from C. They live in a separate file from callbacks.go, as a file
// with //export directives may only declare, not define, C functions in its preamble.
