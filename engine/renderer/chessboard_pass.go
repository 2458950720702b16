package renderer

import (
	_ "embed"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-chessboard/common"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/camera"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/draw"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/geometry"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/chessboard.wgsl
var chessboardShaderBody string

const (
	opaquePipelineKey      = "chessboard-opaque"
	translucentPipelineKey = "chessboard-translucent"
)

// ChessboardShaderSource returns the expanded WGSL module used by the chessboard pass and the
// bindings it declares.
//
// Returns:
//   - string: WGSL with the uniform structs and bind declarations injected
//   - []shader.Annotation: the group and provider declarations, in source order
//   - error: an error if an annotation is malformed
func ChessboardShaderSource() (string, []shader.Annotation, error) {
	pp := shader.NewPreProcessor()
	source, err := pp.Process(chessboardShaderBody)
	if err != nil {
		return "", nil, fmt.Errorf("chessboard shader: %w", err)
	}
	return source, pp.Declarations(), nil
}

// checkDeclarations reports a shader binding with no matching entry in layouts.
func checkDeclarations(decls []shader.Annotation, layouts []wgpu.BindGroupLayoutDescriptor) error {
	for _, d := range decls {
		g, b := *d.Group, *d.Binding
		if g >= len(layouts) {
			return fmt.Errorf("shader line %d: group %d has no layout", d.Line, g)
		}
		found := false
		for _, e := range layouts[g].Entries {
			if int(e.Binding) == b {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("shader line %d: binding %d missing from %q", d.Line, b, layouts[g].Label)
		}
	}
	return nil
}

var (
	cameraLayoutDescriptor = wgpu.BindGroupLayoutDescriptor{
		Label: "Camera Layout",
		Entries: []wgpu.BindGroupLayoutEntry{{
			Binding:    0,
			Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
			Buffer: wgpu.BufferBindingLayout{
				Type:           wgpu.BufferBindingTypeUniform,
				MinBindingSize: 80,
			},
		}},
	}

	drawLayoutDescriptor = wgpu.BindGroupLayoutDescriptor{
		Label: "Drawable Layout",
		Entries: []wgpu.BindGroupLayoutEntry{{
			Binding:    0,
			Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
			Buffer: wgpu.BufferBindingLayout{
				Type:           wgpu.BufferBindingTypeUniform,
				MinBindingSize: 112,
			},
		}},
	}

	textureLayoutDescriptor = wgpu.BindGroupLayoutDescriptor{
		Label: "Texture Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	}

	vertexLayout = wgpu.VertexBufferLayout{
		ArrayStride: geometry.VertexStride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 12, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32, Offset: 20, ShaderLocation: 2},
		},
	}

	whiteTexel = common.TextureStagingData{Pixels: []byte{255, 255, 255, 255}, Width: 1, Height: 1}
)

// ChessboardPass draws scene commands with WebGPU. It keeps the board, selector and piece meshes
// resident, one uniform buffer per drawable label and one bind group per texture. Commands are
// collected between BeginFrame and EndFrame; EndFrame uploads uniforms, draws opaque commands
// first and translucent ones after, then presents.
type ChessboardPass interface {
	draw.Sink

	// Renderer returns the renderer the pass records into.
	Renderer() Renderer

	// Resize reconfigures the surface. Non-positive sizes are ignored.
	Resize(width, height int)

	// Release frees every GPU resource created by the pass, then the renderer.
	Release()
}

type chessboardPass struct {
	mu *sync.Mutex

	renderer Renderer
	logger   *log.Logger

	textureData map[draw.Texture]common.TextureStagingData
	sampler     SamplerStagingData

	cameraProvider bind_group_provider.BindGroupProvider
	drawLayout     *wgpu.BindGroupLayout
	drawProviders  map[string]bind_group_provider.BindGroupProvider
	textures       map[draw.Texture]bind_group_provider.BindGroupProvider
	meshes         map[draw.Mesh]bind_group_provider.BindGroupProvider

	inFrame bool
	frame   draw.Frame
	pending []draw.Command
}

var _ ChessboardPass = &chessboardPass{}

// NewChessboardPass registers the pipelines and uploads the static meshes and textures.
//
// Parameters:
//   - r: the renderer to record into
//   - boardWidth, boardHeight: board size in cells, for the grid mesh
//   - pieceSize: edge length of the piece cube in board-local units
//   - options: functional options to configure the pass
//
// Returns:
//   - ChessboardPass: the ready pass
//   - error: the first GPU resource creation failure
func NewChessboardPass(r Renderer, boardWidth, boardHeight int, pieceSize float32, options ...ChessboardPassOption) (ChessboardPass, error) {
	p := &chessboardPass{
		mu:            &sync.Mutex{},
		renderer:      r,
		logger:        log.Default(),
		textureData:   make(map[draw.Texture]common.TextureStagingData),
		sampler:       SamplerStagingData{AddressModeU: wgpu.AddressModeClampToEdge, AddressModeV: wgpu.AddressModeClampToEdge},
		drawProviders: make(map[string]bind_group_provider.BindGroupProvider),
		textures:      make(map[draw.Texture]bind_group_provider.BindGroupProvider),
		meshes:        make(map[draw.Mesh]bind_group_provider.BindGroupProvider),
	}
	for _, opt := range options {
		opt(p)
	}

	source, decls, err := ChessboardShaderSource()
	if err != nil {
		return nil, err
	}
	descriptors := []wgpu.BindGroupLayoutDescriptor{cameraLayoutDescriptor, drawLayoutDescriptor, textureLayoutDescriptor}
	if err := checkDeclarations(decls, descriptors); err != nil {
		return nil, err
	}
	layouts := pipeline.WithBindGroupLayouts(descriptors...)
	opaque := pipeline.NewPipeline(opaquePipelineKey,
		pipeline.WithSource(source),
		pipeline.WithVertexLayouts(vertexLayout),
		layouts,
		pipeline.WithCullMode(wgpu.CullModeBack),
	)
	translucent := pipeline.NewPipeline(translucentPipelineKey,
		pipeline.WithSource(source),
		pipeline.WithVertexLayouts(vertexLayout),
		layouts,
		pipeline.WithBlendEnabled(true),
		pipeline.WithDepthWriteEnabled(false),
	)
	if err := r.RegisterPipelines(opaque, translucent); err != nil {
		return nil, err
	}

	meshes := map[draw.Mesh]geometry.Mesh{
		draw.MeshBoard:    geometry.Grid(boardWidth, boardHeight),
		draw.MeshSelector: geometry.Square(),
		draw.MeshPiece:    geometry.Cube(pieceSize),
	}
	for kind, m := range meshes {
		provider := bind_group_provider.NewBindGroupProvider(kind.String())
		if err := r.InitMeshBuffers(provider, m.VertexBytes(), m.IndexBytes(), len(m.Indices)); err != nil {
			p.releaseResources()
			return nil, fmt.Errorf("mesh %s: %w", kind, err)
		}
		p.meshes[kind] = provider
	}

	p.cameraProvider = bind_group_provider.NewBindGroupProvider("camera")
	if err := r.InitBindGroup(p.cameraProvider, cameraLayoutDescriptor, nil, nil); err != nil {
		p.releaseResources()
		return nil, fmt.Errorf("camera bind group: %w", err)
	}

	layout, err := r.CreateBindGroupLayout(drawLayoutDescriptor)
	if err != nil {
		p.releaseResources()
		return nil, fmt.Errorf("drawable layout: %w", err)
	}
	p.drawLayout = layout

	for _, kind := range []draw.Texture{draw.TextureNone, draw.TextureBoard, draw.TexturePiece} {
		if err := p.initTexture(kind); err != nil {
			p.releaseResources()
			return nil, err
		}
	}

	return p, nil
}

// initTexture uploads the staged pixels for kind, or a single white texel when none were supplied.
func (p *chessboardPass) initTexture(kind draw.Texture) error {
	data, ok := p.textureData[kind]
	if !ok || !data.Valid() {
		data = whiteTexel
	}
	provider := bind_group_provider.NewBindGroupProvider(fmt.Sprintf("texture-%d", kind))
	if err := p.renderer.InitTextureView(provider, 0, data); err != nil {
		return fmt.Errorf("texture %d: %w", kind, err)
	}
	if err := p.renderer.InitSampler(provider, 1, p.sampler); err != nil {
		provider.Release()
		return fmt.Errorf("texture %d sampler: %w", kind, err)
	}
	if err := p.renderer.InitBindGroup(provider, textureLayoutDescriptor, nil, nil); err != nil {
		provider.Release()
		return fmt.Errorf("texture %d bind group: %w", kind, err)
	}
	p.textures[kind] = provider
	return nil
}

func (p *chessboardPass) Renderer() Renderer {
	return p.renderer
}

func (p *chessboardPass) Resize(width, height int) {
	p.renderer.Resize(width, height)
}

func (p *chessboardPass) BeginFrame(frame draw.Frame) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.inFrame {
		return errors.New("frame already begun")
	}
	p.inFrame = true
	p.frame = frame
	p.pending = p.pending[:0]
	return nil
}

func (p *chessboardPass) Draw(cmd draw.Command) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.inFrame {
		return errors.New("draw outside of a frame")
	}
	if _, ok := p.meshes[cmd.Mesh]; !ok {
		return fmt.Errorf("unknown mesh %d", cmd.Mesh)
	}
	if _, ok := p.textures[cmd.Texture]; !ok {
		return fmt.Errorf("unknown texture %d", cmd.Texture)
	}
	p.pending = append(p.pending, cmd)
	return nil
}

func (p *chessboardPass) EndFrame() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.inFrame {
		return errors.New("end of a frame that was never begun")
	}
	p.inFrame = false

	cam := camera.NewGPUCameraUniform(p.frame.ViewProjection, p.frame.CameraPosition)
	writes := make([]bind_group_provider.BufferWrite, 0, len(p.pending)+1)
	writes = append(writes, bind_group_provider.BufferWrite{Provider: p.cameraProvider, Binding: 0, Data: cam.Marshal()})

	for _, cmd := range p.pending {
		provider, err := p.drawProvider(cmd.Label)
		if err != nil {
			return err
		}
		u := draw.NewGPUDrawUniform(cmd)
		writes = append(writes, bind_group_provider.BufferWrite{Provider: provider, Binding: 0, Data: u.Marshal()})
	}
	p.renderer.WriteBuffers(writes)

	c := p.frame.ClearColor
	if err := p.renderer.BeginFrame(wgpu.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2]), A: float64(c[3])}); err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}

	var drawErr error
	for _, translucent := range []bool{false, true} {
		key := opaquePipelineKey
		if translucent {
			key = translucentPipelineKey
		}
		for _, cmd := range p.pending {
			if cmd.Translucent != translucent {
				continue
			}
			groups := []bind_group_provider.BindGroupProvider{p.cameraProvider, p.drawProviders[cmd.Label], p.textures[cmd.Texture]}
			if err := p.renderer.DrawCall(key, p.meshes[cmd.Mesh], 1, groups); err != nil && drawErr == nil {
				drawErr = fmt.Errorf("draw %s: %w", cmd.Label, err)
			}
		}
	}

	p.renderer.EndFrame()
	p.renderer.Present()
	return drawErr
}

// drawProvider returns the uniform bind group for label, creating it on first use.
// Caller must hold the mutex.
func (p *chessboardPass) drawProvider(label string) (bind_group_provider.BindGroupProvider, error) {
	if provider, ok := p.drawProviders[label]; ok {
		return provider, nil
	}
	provider := bind_group_provider.NewBindGroupProvider(label, bind_group_provider.WithBindGroupLayout(p.drawLayout))
	if err := p.renderer.InitBindGroup(provider, drawLayoutDescriptor, nil, nil); err != nil {
		provider.Release()
		return nil, fmt.Errorf("drawable %s: %w", label, err)
	}
	p.drawProviders[label] = provider
	p.logger.Printf("[Renderer] allocated uniforms for %s", label)
	return provider, nil
}

func (p *chessboardPass) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.releaseResources()
	p.renderer.Release()
}

// releaseResources frees what the pass created, leaving the renderer alive.
func (p *chessboardPass) releaseResources() {
	for label, provider := range p.drawProviders {
		provider.Release()
		delete(p.drawProviders, label)
	}
	for kind, provider := range p.textures {
		provider.Release()
		delete(p.textures, kind)
	}
	for kind, provider := range p.meshes {
		provider.Release()
		delete(p.meshes, kind)
	}
	if p.cameraProvider != nil {
		p.cameraProvider.Release()
		p.cameraProvider = nil
	}
	if p.drawLayout != nil {
		p.drawLayout.Release()
		p.drawLayout = nil
	}
}
