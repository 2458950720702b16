package bind_group_provider

import "github.com/cogentcore/webgpu/wgpu"

// BindGroupProviderOption is a functional option used to configure a BindGroupProvider during construction.
type BindGroupProviderOption func(*bindGroupProvider)

// WithBindGroupLayout reuses an existing layout instead of creating one in InitBindGroup.
// The provider does not take ownership: Release leaves the layout for its creator to free.
//
// Parameters:
//   - bgl: the shared bind group layout
//
// Returns:
//   - BindGroupProviderOption: a function that sets the bind group layout for this provider
func WithBindGroupLayout(bgl *wgpu.BindGroupLayout) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.bindGroupLayout = bgl
		p.sharedLayout = bgl != nil
	}
}
