package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenc/internal/ast"
)

func TestItems(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"fn", "fn add(a: i32, b: i32) -> i32 { a + b }", "(fn add (params (a i32) (b i32)) (-> i32) (block (tail (+ a b))))"},
		{"fn prototype", "fn puts(s: *char) -> i32;", "(fn puts (params (s (ptr char))) (-> i32) ;)"},
		{"fn defaults", "fn f(mut x: i32 = 0) { }", "(fn f (params (x mut i32 (= 0))) (block))"},
		{"fn generics", "fn max<T: Ord + Copy>(a: T, b: T) -> T { a }", "(fn max (generics (T Ord Copy)) (params (a T) (b T)) (-> T) (block (tail a)))"},
		{"pub async fn", "pub async fn load() { }", "(fn async pub load (params) (block))"},
		{"attrs", "@inline @section(\".text\") fn hot() { }", `(fn (attrs @inline (@section ".text")) hot (params) (block))`},
		{"struct", "struct Point { x: i32, y: i32 }", "(struct Point (field x i32) (field y i32))"},
		{"struct semicolons", "struct P { x: i32; y: i32; }", "(struct P (field x i32) (field y i32))"},
		{"opaque struct", "struct Handle;", "(struct Handle)"},
		{"generic struct", "pub struct Box<T> { pub value: T }", "(struct pub Box (generics T) (field pub value T))"},
		{"struct extras", "struct Flags { use Base; a: u8 : 3, b: u8 = 1 }", "(struct Flags (use Base) (field a u8 (bits 3)) (field b u8 (= 1)))"},
		{"union", "union U { i: i32; f: f32; }", "(union U (field i i32) (field f f32))"},
		{"enum", "enum Shape { Circle(f64), Rect { w: f64, h: f64 }, Empty, Code = 3 }",
			"(enum Shape (variant Circle (tuple f64)) (variant Rect (fields (field w f64) (field h f64))) (variant Empty) (variant Code (= 3)))"},
		{"enum named tuple", "enum Msg { Move(x: i32, y: i32) }", "(enum Msg (variant Move (tuple (x i32) (y i32))))"},
		{"impl", "impl Point { fn len(self) -> f64 { 0.0 } }", "(impl Point (fn len (params (self)) (-> f64) (block (tail 0.0))))"},
		{"impl trait", "impl Display for Point { fn show(mut self) { } }", "(impl (for Display) Point (fn show (params (self mut)) (block)))"},
		{"generic impl", "impl<T> Box<T> { }", "(impl (generics T) (generic Box T))"},
		{"trait", "trait Shape: Display { fn area(self) -> f64; const SIDES: i32 = 0; }",
			"(trait Shape (bounds Display) (fn area (params (self)) (-> f64) ;) (const SIDES (: i32) (= 0)))"},
		{"var", "var x = 1;", "(var x (= 1))"},
		{"var typed", "var buf: u8[16];", "(var buf (: (array u8 16)))"},
		{"autofree var", "autofree var p = alloc(8);", "(var autofree p (= (call alloc 8)))"},
		{"const", "const N: usize = 4;", "(const N (: usize) (= 4))"},
		{"import path", "import std::io as sio;", "(import std::io (as sio))"},
		{"import string", `import "lib/util.zc";`, "(import lib/util.zc)"},
		{"import plugin", `import plugin "regex";`, `(import-plugin "regex")`},
		{"comptime", "comptime { gen(); }", "(comptime (block (expr (call gen))))"},
		{"top-level stmt", "main();", "(expr (call main))"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			items := dumpItems(t, tc.src)
			require.Len(t, items, 1)
			assert.Equal(t, tc.want, items[0])
		})
	}
}

func TestDirectives(t *testing.T) {
	src := "//> link: -lm\n" +
		"//> immutable-by-default\n" +
		"#include <stdio.h>\n" +
		"#include \"local.h\"\n" +
		"#define MAX(a, b) ((a) > (b) ? (a) : (b))\n" +
		"#define LONG 1 \\\n  + 2\n" +
		"#ifdef DEBUG\n" +
		"#endif\n" +
		"#pragma once\n"
	want := []string{
		`(build link "-lm")`,
		`(build immutable-by-default)`,
		`(pp include "stdio.h" system)`,
		`(pp include "local.h")`,
		`(pp define MAX "(a, b) ((a) > (b) ? (a) : (b))")`,
		`(pp define LONG "1    + 2")`,
		`(pp ifdef DEBUG)`,
		`(pp endif)`,
		`(pp pragma "once")`,
	}
	assert.Equal(t, want, dumpItems(t, src))
}

func TestAttributeCatalog(t *testing.T) {
	b, res, _ := parseSource(t, "@must_use @custom fn f() { }", Options{})
	require.Empty(t, res.Errors)
	f := b.Files.Get(res.File)
	require.Len(t, f.Items, 1)
	fn, ok := b.Items.Fn(f.Items[0])
	require.True(t, ok)
	require.Len(t, fn.Attrs, 2)
	assert.Equal(t, ast.AttrMustUse, fn.Attrs[0].Known)
	assert.Equal(t, ast.AttrUnknown, fn.Attrs[1].Known)
	assert.Equal(t, "custom", b.Str(fn.Attrs[1].Name))
}

func TestWholeProgram(t *testing.T) {
	src := `//> link: -lm
import std::io;

struct Point { x: f64, y: f64 }

impl Point {
    fn dist(self, other: Point) -> f64 {
        var dx = self.x - other.x;
        var dy = self.y - other.y;
        sqrt(dx * dx + dy * dy)
    }
}

fn main() -> i32 {
    var p = Point { x: 0.0, y: 0.0 };
    for i in 0..3 {
        println "step {i}";
    }
    match p.x {
        0.0 => "origin"..,
        _ => !"elsewhere",
    }
    return 0;
}
`
	items := dumpItems(t, src)
	require.Len(t, items, 5)
	assert.Equal(t, "(import std::io)", items[1])
	assert.Contains(t, items[4], `(println bare (interp "step " (splice i)))`)
	assert.Contains(t, items[4], `(arm _ (eprintln shorthand "elsewhere"))`)
}
