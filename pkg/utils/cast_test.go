package utils

import (
	"reflect"
	"testing"
)

func TestSafeCast(t *testing.T) {
	cast, err := SafeCast[int](12334)
	if err != nil {
		t.Fatal(err)
	}
	t.Log(cast, reflect.TypeOf(cast).String())

	_, err = SafeCast[string](nil)
	if err == nil {
		t.Fatal("nil param must not cast")
	}
	t.Log(err)

	_, err = SafeCast[string](12334)
	if err == nil {
		t.Fatal("int must not cast to string")
	}
}
