package session

// Action is one intended side effect of an activation or deactivation
// transition, in the order the calling shell must perform it. The model
// applies value-bearing actions to its in-memory environment as they are
// emitted; the shell renderers translate the same list into dialect text.
type Action interface {
	action()
}

// SetEnv exports Name with Value.
type SetEnv struct {
	Name  string
	Value string
}

// UnsetEnv removes Name. Removing an absent variable is a no-op.
type UnsetEnv struct {
	Name string
}

// SavePrompt copies the current prompt into the dialect's backup holder,
// recording absence when the prompt is unset. The prompt is a shell
// variable the binary cannot read, so renderers emit this as an in-shell
// conditional rather than a computed value.
type SavePrompt struct{}

// DecoratePrompt sets the prompt to Decoration followed by the saved
// pre-activation prompt, or to Decoration alone when none was saved.
type DecoratePrompt struct {
	Decoration string
}

// RestorePrompt puts the prompt back to its saved state, unsetting it when
// the backup records absence, and drops the backup.
type RestorePrompt struct{}

// Rehash invalidates the shell's command-lookup cache so executables under
// the new PATH are found immediately.
type Rehash struct{}

// SourceLocal sources the dialect's site-local override script under Dir
// when one exists. A missing script is a silent no-op.
type SourceLocal struct {
	Dir string
}

// RunMOTD invokes the message-of-the-day runner for the release root.
type RunMOTD struct {
	Root string
}

func (SetEnv) action()         {}
func (UnsetEnv) action()       {}
func (SavePrompt) action()     {}
func (DecoratePrompt) action() {}
func (RestorePrompt) action()  {}
func (Rehash) action()         {}
func (SourceLocal) action()    {}
func (RunMOTD) action()        {}
