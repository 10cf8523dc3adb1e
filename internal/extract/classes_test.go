package extract

import (
	"reflect"
	"testing"
)

func TestClasses(t *testing.T) {
	source := `class Animal {
  constructor(name) {
    this.name = name;
  }

  speak() {
    if (this.loud) {
      return "!";
    }
    for (let i = 0; i < 3; i++) {
      log(i);
    }
  }
}

class Dog extends Animal {
  speak() {
    return "woof {";
  }

  fetch(item) {
    while (true) {
      break;
    }
  }
}
`

	classes := Classes(source)
	if len(classes) != 2 {
		t.Fatalf("expected 2 classes, got %d", len(classes))
	}

	animal := classes[0]
	if animal.Name != "Animal" || animal.Parent != "" {
		t.Errorf("Animal = %+v", animal.Block)
	}
	if want := []string{"constructor", "speak"}; !reflect.DeepEqual(animal.Methods, want) {
		t.Errorf("Animal methods = %v, want %v", animal.Methods, want)
	}

	dog := classes[1]
	if dog.Name != "Dog" || dog.Parent != "Animal" {
		t.Errorf("Dog = %+v", dog.Block)
	}
	if want := []string{"fetch", "speak"}; !reflect.DeepEqual(dog.Methods, want) {
		t.Errorf("Dog methods = %v, want %v", dog.Methods, want)
	}
}

func TestClasses_KeepsRepeatedDeclarations(t *testing.T) {
	source := `class A { one() {} }
class A { two() {} three() {} }
`
	classes := Classes(source)
	if len(classes) != 2 {
		t.Fatalf("expected both declarations, got %d", len(classes))
	}
	if classes[0].Start >= classes[1].Start {
		t.Errorf("classes should be in source order")
	}
}

func TestMethods_ExcludesControlKeywords(t *testing.T) {
	body := `
  run() {
    if (a) {}
    for (;;) {}
    while (b) {}
    switch (c) {}
    try {} catch (e) {}
    return (x) {}
    new (Thing) {}
  }
`
	got := Methods(body)
	if want := []string{"run"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Methods = %v, want %v", got, want)
	}
}

func TestIsControlKeyword(t *testing.T) {
	for _, kw := range []string{"if", "for", "while", "switch", "catch", "return", "new"} {
		if !IsControlKeyword(kw) {
			t.Errorf("%q should be a control keyword", kw)
		}
	}
	if IsControlKeyword("render") {
		t.Error("render should not be a control keyword")
	}
}
