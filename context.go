package dictgo

// Context is the owning entity a body of schema processing hangs its
// dictionary on. Every context resolves to exactly one Dict: by default a
// private one created with the context and closed with it, or - for contexts
// flagged as sharing an immutable store - a single Dict passed in at
// construction and owned by someone else.
type Context struct {
	dict   *Dict
	shared bool
}

type contextOptions struct {
	shared      *Dict
	dictOptions []Option
}

// ContextOption configures Context construction behavior.
type ContextOption func(*contextOptions)

// WithSharedDict puts the context in shared mode: it uses d as its
// dictionary and does not close it. Several contexts may share one Dict this
// way; the Dict's own lifecycle belongs to whoever created it.
func WithSharedDict(d *Dict) ContextOption {
	return func(o *contextOptions) {
		o.shared = d
	}
}

// WithDictOptions forwards options to the private Dict a context creates.
// Ignored in shared mode.
func WithDictOptions(opts ...Option) ContextOption {
	return func(o *contextOptions) {
		o.dictOptions = opts
	}
}

// NewContext creates a context with its own dictionary, or in shared mode
// when WithSharedDict is given.
func NewContext(opts ...ContextOption) (*Context, error) {
	var o contextOptions
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	if o.shared != nil {
		return &Context{dict: o.shared, shared: true}, nil
	}
	d, err := New(o.dictOptions...)
	if err != nil {
		return nil, err
	}
	return &Context{dict: d}, nil
}

// Dict returns the dictionary serving this context.
func (c *Context) Dict() *Dict {
	return c.dict
}

// Close closes the context's private dictionary. In shared mode it is a
// no-op: the shared store outlives any single context.
func (c *Context) Close() error {
	if c == nil || c.shared {
		return nil
	}
	return c.dict.Close()
}

// Insert interns value through ctx's dictionary. See Dict.Insert.
func Insert(ctx *Context, value string, length int) (string, error) {
	if ctx == nil {
		return "", ErrInvalidArgument
	}
	return ctx.dict.Insert(value, length)
}

// InsertBytes interns byte content through ctx's dictionary. See
// Dict.InsertBytes.
func InsertBytes(ctx *Context, value []byte, length int) (string, error) {
	if ctx == nil {
		return "", ErrInvalidArgument
	}
	return ctx.dict.InsertBytes(value, length)
}

// InsertZeroCopy transfers buf to ctx's dictionary. See Dict.InsertZeroCopy;
// the ownership transfer is unconditional even when ctx is nil and the call
// fails.
func InsertZeroCopy(ctx *Context, buf []byte) (string, error) {
	if ctx == nil {
		return "", ErrInvalidArgument
	}
	return ctx.dict.InsertZeroCopy(buf)
}

// Dup increments the refcount of handle in ctx's dictionary. See Dict.Dup.
func Dup(ctx *Context, handle string) (string, error) {
	if ctx == nil {
		return "", ErrInvalidArgument
	}
	return ctx.dict.Dup(handle)
}

// Remove releases one reference to handle's content in ctx's dictionary. See
// Dict.Remove.
func Remove(ctx *Context, handle string) error {
	if ctx == nil {
		return ErrInvalidArgument
	}
	return ctx.dict.Remove(handle)
}
