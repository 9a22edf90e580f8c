package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/autoload/internal/core/domain"
	"go.trai.ch/autoload/internal/engine/scanner"
)

const rootType = `SledgeHammer\Object`

func scan(t *testing.T, src string) scanner.Result {
	t.Helper()
	return scanner.Scan([]byte(src), scanner.Options{RootType: rootType})
}

func names(headers []domain.Header) []string {
	out := make([]string, 0, len(headers))
	for _, h := range headers {
		out = append(out, h.QualifiedName())
	}
	return out
}

func TestScan_ClassWithSupertype(t *testing.T) {
	res := scan(t, "<?php\nclass A {}\nclass B extends A {\n  function run() {}\n}\n")

	require.Empty(t, res.Diagnostics)
	require.Len(t, res.Headers, 2)

	a := res.Headers[0]
	assert.Equal(t, "A", a.Name)
	assert.Equal(t, domain.KindClass, a.Kind)
	assert.Empty(t, a.Supertypes)
	assert.Equal(t, 2, a.Line)

	b := res.Headers[1]
	assert.Equal(t, "B", b.Name)
	assert.Equal(t, []string{"A"}, b.Supertypes)
	assert.Equal(t, []string{"run"}, b.Methods)
	assert.Equal(t, 3, b.Line)
}

func TestScan_RootTypeIsElided(t *testing.T) {
	res := scan(t, "<?php\nclass Widget extends \\SledgeHammer\\Object {}\n")

	require.Len(t, res.Headers, 1)
	assert.Empty(t, res.Headers[0].Supertypes)
}

func TestScan_InterfaceExtendsMany(t *testing.T) {
	res := scan(t, "<?php\ninterface Shape extends Drawable, Countable {\n  function area();\n}\n")

	require.Empty(t, res.Diagnostics)
	require.Len(t, res.Headers, 1)
	h := res.Headers[0]
	assert.Equal(t, domain.KindInterface, h.Kind)
	assert.Equal(t, []string{"Drawable", "Countable"}, h.Supertypes)
	assert.Equal(t, []string{"area"}, h.Methods)
}

func TestScan_ImplementsList(t *testing.T) {
	res := scan(t, "<?php\nclass Box extends Shape implements ArrayAccess, Countable {}\n")

	require.Empty(t, res.Diagnostics)
	require.Len(t, res.Headers, 1)
	assert.Equal(t, []string{"Shape"}, res.Headers[0].Supertypes)
	assert.Equal(t, []string{"ArrayAccess", "Countable"}, res.Headers[0].Interfaces)
}

func TestScan_NamespaceResolution(t *testing.T) {
	src := `<?php
namespace App\Model;

use Lib\Base;
use Lib\Contracts\Storable as Store;
use Lib\Support\{Jsonable, Arrayable as Arr};
use function Lib\helper;

class User extends Base implements Store, Jsonable, Arr, \Countable, Sub\Named, namespace\Local {}
`
	res := scan(t, src)

	require.Empty(t, res.Diagnostics)
	require.Len(t, res.Headers, 1)
	h := res.Headers[0]
	assert.Equal(t, `App\Model\User`, h.QualifiedName())
	assert.Equal(t, []string{`Lib\Base`}, h.Supertypes)
	assert.Equal(t, []string{
		`Lib\Contracts\Storable`,
		`Lib\Support\Jsonable`,
		`Lib\Support\Arrayable`,
		`Countable`,
		`App\Model\Sub\Named`,
		`App\Model\Local`,
	}, h.Interfaces)
}

func TestScan_BracedNamespaces(t *testing.T) {
	src := `<?php
namespace First {
  class A {}
}
namespace Second {
  use First\A;
  class B extends A {}
}
namespace {
  class C {}
}
`
	res := scan(t, src)

	require.Empty(t, res.Diagnostics)
	assert.Equal(t, []string{`First\A`, `Second\B`, `C`}, names(res.Headers))
	assert.Equal(t, []string{`First\A`}, res.Headers[1].Supertypes)
}

func TestScan_IgnoresNonDeclarations(t *testing.T) {
	src := `<?php
$name = Foo::class;
$obj = new class extends Base {
  function inner() {}
};
$fn = function () use ($name) { return $name; };
$x->class = 1;
echo "class Fake extends Nothing {}";
// class Commented {}
class Real {}
`
	res := scan(t, src)

	require.Empty(t, res.Diagnostics)
	assert.Equal(t, []string{"Real"}, names(res.Headers))
}

func TestScan_MethodsOnlyAtClassLevel(t *testing.T) {
	src := `<?php
class Service {
  public static function &create() {
    $cb = function () {};
    return new static();
  }
  private function list() {}
  abstract protected function handle(Request $r);
}
`
	res := scan(t, src)

	require.Len(t, res.Headers, 1)
	assert.Equal(t, []string{"create", "list", "handle"}, res.Headers[0].Methods)
}

func TestScan_MultipleInheritance(t *testing.T) {
	res := scan(t, "<?php\nclass C extends A, B {}\n")

	require.Len(t, res.Headers, 1)
	assert.Equal(t, []string{"A"}, res.Headers[0].Supertypes)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, domain.CodeMultipleInheritance, res.Diagnostics[0].Code)
}

func TestScan_UnexpectedTokenContinues(t *testing.T) {
	src := "<?php\nclass Broken extends 42 Base {}\nclass Fine {}\n"
	res := scan(t, src)

	require.NotEmpty(t, res.Diagnostics)
	assert.Equal(t, domain.CodeUnexpectedToken, res.Diagnostics[0].Code)
	assert.Equal(t, 2, res.Diagnostics[0].Line)
	assert.Equal(t, []string{"Broken", "Fine"}, names(res.Headers))
	assert.Equal(t, []string{"Base"}, res.Headers[0].Supertypes)
}

func TestScan_AbandonedHeader(t *testing.T) {
	res := scan(t, "<?php\nclass ;\nclass Next {}\n")

	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, domain.CodeUnexpectedToken, res.Diagnostics[0].Code)
	assert.Equal(t, []string{"Next"}, names(res.Headers))
}

func TestScan_TruncatedFile(t *testing.T) {
	res := scan(t, "<?php\nclass Half extends")

	assert.Empty(t, res.Headers)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, domain.CodeUnexpectedToken, res.Diagnostics[0].Code)
}

func TestScan_UnclosedBody(t *testing.T) {
	res := scan(t, "<?php\nclass A {}\nclass B extends A {\n function f() {}\n")

	require.Len(t, res.Headers, 2)
	assert.Equal(t, "A", res.Headers[0].Name)
	assert.Equal(t, "B", res.Headers[1].Name)
	assert.Equal(t, []string{"A"}, res.Headers[1].Supertypes)
	assert.Equal(t, []string{"f"}, res.Headers[1].Methods)

	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, domain.CodeUnexpectedToken, res.Diagnostics[0].Code)
	assert.Contains(t, res.Diagnostics[0].Message, "end of file")
	assert.Equal(t, "BODY", res.Diagnostics[0].Context["state"])
}

func TestScan_NoDeclarations(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "empty", src: ""},
		{name: "html only", src: "<html><body>hello</body></html>"},
		{name: "script", src: "<?php\necho 'hi';\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := scan(t, tt.src)
			assert.Empty(t, res.Headers)
			assert.Empty(t, res.Diagnostics)
		})
	}
}

func TestScan_TemplateWithCloseTag(t *testing.T) {
	src := "<html>\n<?php\nclass View {\n  function render() { ?>\n<p>{ unbalanced</p>\n<?php }\n}\n?>\n</html>\n"
	res := scan(t, src)

	require.Empty(t, res.Diagnostics)
	require.Len(t, res.Headers, 1)
	assert.Equal(t, "View", res.Headers[0].Name)
	assert.Equal(t, []string{"render"}, res.Headers[0].Methods)
	assert.Equal(t, 3, res.Headers[0].Line)
}
