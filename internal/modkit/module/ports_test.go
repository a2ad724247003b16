package module

import (
	"testing"

	phttp "einwurf/internal/platform/net/http"
	kit "einwurf/internal/platform/testkit"
)

type FooPort interface{ Foo() int }

type fooImpl struct{ v int }

func (f fooImpl) Foo() int { return f.v }

type fakeModule struct {
	name  string
	ports any
}

func (m fakeModule) Name() string             { return m.name }
func (m fakeModule) Ports() any               { return m.ports }
func (m fakeModule) MountRoutes(phttp.Router) {}

var _ Module = fakeModule{}

func TestPortsOf_Direct(t *testing.T) {
	got, ok := PortsOf[FooPort](fakeModule{ports: fooImpl{v: 7}})
	if !ok || got.Foo() != 7 {
		t.Fatalf("PortsOf direct = %v, %v", got, ok)
	}
}

func TestPortsOf_StructField(t *testing.T) {
	type bundle struct {
		Other string
		Foo   FooPort
	}
	for _, p := range []any{bundle{Foo: fooImpl{v: 3}}, &bundle{Foo: fooImpl{v: 3}}} {
		got, ok := PortsOf[FooPort](fakeModule{ports: p})
		if !ok || got.Foo() != 3 {
			t.Fatalf("PortsOf(%T) = %v, %v", p, got, ok)
		}
	}
}

func TestPortsOf_Missing(t *testing.T) {
	cases := []Module{
		nil,
		fakeModule{},
		fakeModule{ports: 123},
		fakeModule{ports: struct{ n int }{1}},
	}
	for i, m := range cases {
		if _, ok := PortsOf[FooPort](m); ok {
			t.Fatalf("case %d: expected no port", i)
		}
	}
}

func TestMustPortsOf_PanicsWithName(t *testing.T) {
	kit.MustPanic(t, func() { _ = MustPortsOf[FooPort](fakeModule{name: "relay"}) })

	defer func() {
		r := recover()
		s, _ := r.(string)
		kit.MustContain(t, s, "relay")
	}()
	_ = MustPortsOf[FooPort](fakeModule{name: "relay"})
}
