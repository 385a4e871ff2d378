package api

// The C accessor. It copies every argument buffer before handing it to a
// callback and releases the copy afterwards, so callbacks never see host memory.
// It lives in a preamble instead of a .c file so that the package still builds
// with CGo disabled.

/*
#include "bindings.h"

#include <string.h>

static int64_t outstanding = 0;
static int fail_countdown = -1;

int64_t outstanding_copies(void) {
    return __atomic_load_n(&outstanding, __ATOMIC_SEQ_CST);
}

void fail_allocation_after(int successes) {
    __atomic_store_n(&fail_countdown, successes, __ATOMIC_SEQ_CST);
}

// temp_copy makes the private copy of an argument buffer that lives for one call.
static uint8_t* temp_copy(const uint8_t* data, int size) {
    int countdown = __atomic_load_n(&fail_countdown, __ATOMIC_SEQ_CST);
    while (countdown >= 0) {
        int next = countdown == 0 ? -1 : countdown - 1;
        if (__atomic_compare_exchange_n(&fail_countdown, &countdown, next, 0, __ATOMIC_SEQ_CST, __ATOMIC_SEQ_CST)) {
            break;
        }
    }
    if (countdown == 0) {
        return NULL;
    }
    uint8_t* copy = (uint8_t*)malloc((size_t)size);
    if (copy == NULL) {
        return NULL;
    }
    memcpy(copy, data, (size_t)size);
    __atomic_add_fetch(&outstanding, 1, __ATOMIC_SEQ_CST);
    return copy;
}

static void temp_free(uint8_t* copy) {
    if (copy != NULL) {
        free(copy);
        __atomic_sub_fetch(&outstanding, 1, __ATOMIC_SEQ_CST);
    }
}

void* allocate_and_copy(const void* data, size_t size) {
    if (data == NULL || size == 0) {
        return NULL;
    }
    void* ptr = malloc(size);
    if (ptr != NULL) {
        memcpy(ptr, data, size);
    }
    return ptr;
}

Bytes copy_bytes(const void* data, size_t size) {
    Bytes result = {0};
    void* copy = allocate_and_copy(data, size);
    if (copy != NULL) {
        result.data = (const uint8_t*)copy;
        result.length = size;
    }
    return result;
}

BytesWithError get_value(Mutable* state, uint8_t* key, int key_len) {
    BytesWithError result = {0};

    if (!state || (key == NULL && key_len != 0) || (key != NULL && key_len <= 0)) {
        result.error = strdup("invalid arguments");
        return result;
    }

    // a null key with zero length is forwarded as an empty buffer
    uint8_t* key_copy = NULL;
    if (key != NULL) {
        key_copy = temp_copy(key, key_len);
        if (!key_copy) {
            result.error = strdup("failed to allocate memory for key");
            return result;
        }
    }

    Bytes key_bytes = {
        .data = key_copy,
        .length = (size_t)key_len
    };

    result = bridge_get_callback(state->get_value_callback, state->stateObj, key_bytes);

    temp_free(key_copy);
    return result;
}

char* insert_value(Mutable* db, const uint8_t* key, int key_size, const uint8_t* value, int value_size) {
    if (!db || !key || key_size <= 0 || !value || value_size <= 0) {
        return strdup("invalid arguments");
    }

    uint8_t* key_copy = temp_copy(key, key_size);
    if (!key_copy) {
        return strdup("failed to allocate memory for key");
    }

    uint8_t* value_copy = temp_copy(value, value_size);
    if (!value_copy) {
        temp_free(key_copy);
        return strdup("failed to allocate memory for value");
    }

    Bytes key_bytes = {
        .data = key_copy,
        .length = (size_t)key_size
    };
    Bytes value_bytes = {
        .data = value_copy,
        .length = (size_t)value_size
    };

    char* error = bridge_insert_callback(db->insert_callback, db->stateObj, key_bytes, value_bytes);

    temp_free(key_copy);
    temp_free(value_copy);
    return error;
}

char* remove_value(Mutable* db, const uint8_t* key, int key_size) {
    if (!db || !key || key_size <= 0) {
        return strdup("invalid arguments");
    }

    uint8_t* key_copy = temp_copy(key, key_size);
    if (!key_copy) {
        return strdup("failed to allocate memory for key");
    }

    Bytes key_bytes = {
        .data = key_copy,
        .length = (size_t)key_size
    };

    char* error = bridge_remove_callback(db->remove_callback, db->stateObj, key_bytes);

    temp_free(key_copy);
    return error;
}

BytesWithError bridge_get_callback(GetStateCallback callback, void* stateObj, Bytes key) {
    if (!callback) {
        BytesWithError result = {0};
        result.error = strdup("null callback");
        return result;
    }
    return callback(stateObj, key);
}

char* bridge_insert_callback(InsertStateCallback callback, void* stateObj, Bytes key, Bytes value) {
    if (!callback) {
        return strdup("null callback");
    }
    return callback(stateObj, key, value);
}

char* bridge_remove_callback(RemoveStateCallback callback, void* stateObj, Bytes key) {
    if (!callback) {
        return strdup("null callback");
    }
    return callback(stateObj, key);
}

Mutable new_mutable(void* stateObj, GetStateCallback get_cb, InsertStateCallback insert_cb, RemoveStateCallback remove_cb) {
    Mutable mutable = {
        .stateObj = stateObj,
        .get_value_callback = get_cb,
        .insert_callback = insert_cb,
        .remove_callback = remove_cb
    };
    return mutable;
}
*/
import "C"
