package board

// BoardBuilderOption configures a board under construction. It reports whether it supplied
// a custom layout, in which case the standard layout is not applied.
type BoardBuilderOption func(*boardImpl) bool

// WithSize sets the board dimensions in cells.
//
// Parameters:
//   - width: number of columns
//   - height: number of rows
//
// Returns:
//   - BoardBuilderOption: a function that sets the size
func WithSize(width, height int) BoardBuilderOption {
	return func(b *boardImpl) bool {
		b.width = width
		b.height = height
		return false
	}
}

// WithLayout places the pieces on the given cells instead of the standard layout.
// NewBoard rejects layouts with off-board or shared cells.
//
// Parameters:
//   - layout: initial cell per piece index
//
// Returns:
//   - BoardBuilderOption: a function that sets the layout
func WithLayout(layout Layout) BoardBuilderOption {
	return func(b *boardImpl) bool {
		b.layout = layout
		return true
	}
}
