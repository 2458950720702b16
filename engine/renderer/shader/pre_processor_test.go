package shader

import (
	"strings"
	"testing"
)

func TestProcessExpandsAnnotations(t *testing.T) {
	src := strings.Join([]string{
		"//@oxy:include camera",
		"//@oxy:include draw",
		"//@oxy:group 0 0 storage_uniform camera camera",
		"//@oxy:group 1 0 storage_uniform drawable draw",
		"//@oxy:provider 2 0 surface surface_texture",
		"@group(2) @binding(0) var surface_texture: texture_2d<f32>;",
	}, "\n")

	p := NewPreProcessor()
	out, err := p.Process(src)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"struct CameraUniform {",
		"struct DrawUniform {",
		"@group(0) @binding(0) var<uniform> camera: CameraUniform;",
		"@group(1) @binding(0) var<uniform> drawable: DrawUniform;",
		"@group(2) @binding(0) var surface_texture: texture_2d<f32>;",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, "@oxy:") {
		t.Error("annotations left in output")
	}

	decls := p.Declarations()
	if len(decls) != 3 {
		t.Fatalf("declarations = %d, want 3", len(decls))
	}
	if d := decls[2]; d.Type != AnnotationTypeProvider || *d.Group != 2 || d.Args[1] != AnnotationArgSurfaceTexture {
		t.Fatalf("provider declaration = %+v", d)
	}
}

func TestProcessResetsDeclarations(t *testing.T) {
	p := NewPreProcessor()
	if _, err := p.Process("//@oxy:group 0 0 storage_uniform camera camera"); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Process("fn main() {}"); err != nil {
		t.Fatal(err)
	}
	if len(p.Declarations()) != 0 {
		t.Fatal("declarations should reset between calls")
	}
}

func TestParseAnnotationErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"empty", "//@oxy:", "empty"},
		{"unknown type", "//@oxy:import camera", "unknown @oxy annotation type"},
		{"include arity", "//@oxy:include", "exactly one argument"},
		{"unknown struct", "//@oxy:include light", "unknown struct type"},
		{"bad group", "//@oxy:group x 0 storage_uniform camera camera", "invalid group number"},
		{"negative binding", "//@oxy:group 0 -1 storage_uniform camera camera", "invalid binding number"},
		{"address space", "//@oxy:group 0 0 push_constant camera camera", "unknown address space"},
		{"provider identity", "//@oxy:provider 2 0 material", "unknown provider identity"},
		{"binding role", "//@oxy:provider 2 0 surface normal_map", "unknown binding role"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseAnnotation(tt.line, 7)
			if err == nil || !strings.Contains(err.Error(), tt.want) || !strings.HasPrefix(err.Error(), "line 7:") {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}

	if a, err := parseAnnotation("// plain comment", 1); a != nil || err != nil {
		t.Fatalf("plain comment parsed as %v, %v", a, err)
	}
}
