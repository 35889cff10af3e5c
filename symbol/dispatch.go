package symbol

import (
	"context"
	"strings"

	"github.com/hupe1980/symgo/core"
	"github.com/hupe1980/symgo/logging"
)

// metaInstruction is prepended to every reasoning request. It mirrors the
// non-verbose output contract the prompt sections rely on.
const metaInstruction = "[META INSTRUCTIONS START]\n" +
	"You do not output anything else, like verbose preambles or post explanations, " +
	"such as \"Sure, let me...\", \"Hope that was helpful...\", \"Yes, I can help you with that...\". " +
	"Consider well formatted output, e.g. for sentences use punctuation, spaces etc. or for code use indentation. " +
	"Never add meta instructions information to your output!\n"

// reservedKeywords are names the dispatcher itself uses as configuration
// keys when building a request. Caller-supplied overrides must not shadow
// them; collisions are rejected before any backend call.
var reservedKeywords = map[string]struct{}{
	"operation":       {},
	"capability":      {},
	"instruction":     {},
	"examples":        {},
	"stop":            {},
	"payload":         {},
	"processed_input": {},
	"template_suffix": {},
	"index":           {},
	"vector":          {},
	"metadata":        {},
	"top_k":           {},
	"overwrite":       {},
}

// IndexParams carries the structured parameters of vector index operations.
type IndexParams struct {
	Name      string
	Vector    []float32
	Metadata  map[string]string
	TopK      int
	Overwrite bool
}

// Call describes one dispatch: the operation kind plus optional few-shot
// examples, processing pipeline, stop markers and backend overrides. It
// replaces ephemeral per-operator closures with an explicit configuration
// object handed to Dispatch.
type Call struct {
	// Operation selects the semantic operation kind.
	Operation Operation
	// Capability overrides the operation's default target capability.
	Capability string
	// Instruction overrides the operation's default instruction text.
	Instruction string
	// Operator parameterizes OpCompare ("<", ">=", ...) and OpLogic
	// ("and", "or", "xor").
	Operator string
	// Examples holds ordered few-shot example strings.
	Examples []string
	// PreProcessors transform the assembled prompt parts before rendering.
	PreProcessors []PreProcessor
	// PostProcessors transform the raw backend reply, in order.
	PostProcessors []PostProcessor
	// Stop lists generation stop markers.
	Stop []string
	// Payload is additional context rendered under [ADDITIONAL CONTEXT].
	Payload string
	// TemplateSuffix, when set, instructs the backend to generate only the
	// placeholder content of a surrounding template.
	TemplateSuffix string
	// ReturnTag declares the type tag of the result symbol. Defaults to
	// the subject's own tag.
	ReturnTag string
	// Index carries structured parameters for index operations.
	Index IndexParams
	// Overrides are backend-specific keyword overrides. Reserved keyword
	// names are rejected.
	Overrides map[string]any
}

// DispatcherOptions configures a Dispatcher.
type DispatcherOptions struct {
	// Registry resolves capability names to backend handles. Defaults to
	// the process-wide registry.
	Registry *core.Registry
	// Contexts holds the per-type-tag dynamic context table.
	Contexts *ContextRegistry
	// Logger receives diagnostic output. Defaults to a no-op logger.
	Logger logging.Logger
}

// Dispatcher turns a Call plus subject and operands into one well-formed
// backend request and converts the raw reply back into a Symbol. It
// performs no retries; transport failures surface as BackendError.
type Dispatcher struct {
	registry *core.Registry
	contexts *ContextRegistry
	logger   logging.Logger
}

// NewDispatcher creates a dispatcher with optional overrides.
func NewDispatcher(optFns ...func(o *DispatcherOptions)) *Dispatcher {
	opts := DispatcherOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Registry == nil {
		opts.Registry = core.DefaultRegistry()
	}
	if opts.Contexts == nil {
		opts.Contexts = NewContextRegistry()
	}
	return &Dispatcher{
		registry: opts.Registry,
		contexts: opts.Contexts,
		logger:   logging.OrNoOp(opts.Logger),
	}
}

// Registry returns the capability registry the dispatcher resolves against.
func (d *Dispatcher) Registry() *core.Registry { return d.registry }

// Contexts returns the dynamic context registry.
func (d *Dispatcher) Contexts() *ContextRegistry { return d.contexts }

// Symbol constructs a Symbol bound to this dispatcher so operator sugar can
// be used directly on it.
func (d *Dispatcher) Symbol(payload any, opts ...Option) Symbol {
	s := New(payload, opts...)
	s.dispatcher = d
	return s
}

// PromptParts holds the sections assembled into the final request text.
// Pre-processors receive and may rewrite them before rendering.
type PromptParts struct {
	Instruction    string
	Static         string
	Dynamic        string
	Additional     string
	Examples       []string
	Input          string
	TemplateSuffix string
}

// Dispatch executes one semantic operation. The subject is never mutated;
// the reply is wrapped into a fresh Symbol of the declared return tag. An
// empty backend reply produces an empty-string payload, never a nil one.
func (d *Dispatcher) Dispatch(ctx context.Context, call Call, subject Symbol, operands ...Symbol) (Symbol, error) {
	for key := range call.Overrides {
		if _, reserved := reservedKeywords[key]; reserved {
			return Symbol{}, &core.ReservedKeywordError{Keyword: key}
		}
	}

	capabilityName := call.Capability
	if capabilityName == "" {
		capabilityName = call.Operation.capability()
	}

	var req core.Request
	if call.Operation.structured() {
		req = d.buildStructuredRequest(call, subject)
	} else {
		parts := PromptParts{
			Instruction:    call.Instruction,
			Static:         renderStatic(subject.static),
			Dynamic:        d.contexts.renderDynamic(subject.typeTag),
			Additional:     call.Payload,
			Examples:       call.Examples,
			Input:          call.Operation.renderInput(subject, operands, call.Operator),
			TemplateSuffix: call.TemplateSuffix,
		}
		if parts.Instruction == "" {
			parts.Instruction = call.Operation.instruction()
		}
		for _, pre := range call.PreProcessors {
			if err := pre(&parts, subject, operands); err != nil {
				return Symbol{}, err
			}
		}
		req = renderRequest(parts, call)
	}

	handle, err := d.registry.Resolve(capabilityName)
	if err != nil {
		return Symbol{}, err
	}

	d.logger.Debug("dispatch", "operation", call.Operation.String(), "capability", capabilityName)

	resp, err := handle.Invoke(ctx, req)
	if err != nil {
		if _, ok := err.(*core.BackendError); ok {
			return Symbol{}, err
		}
		return Symbol{}, &core.BackendError{Capability: capabilityName, Err: err}
	}

	var value any
	if resp.Data != nil {
		value = resp.Data
	} else {
		value = resp.Text
	}
	for _, post := range call.PostProcessors {
		value, err = post(value)
		if err != nil {
			return Symbol{}, err
		}
	}

	return subject.withResult(unwrap(value), call.ReturnTag), nil
}

// buildStructuredRequest prepares requests for embedding and indexing
// capabilities: raw input text plus structured overrides, no prompt
// assembly.
func (d *Dispatcher) buildStructuredRequest(call Call, subject Symbol) core.Request {
	overrides := map[string]any{"operation": call.Operation.String()}
	if call.Index.Name != "" {
		overrides["index"] = call.Index.Name
	}
	if call.Index.Vector != nil {
		overrides["vector"] = call.Index.Vector
	}
	if call.Index.Metadata != nil {
		overrides["metadata"] = call.Index.Metadata
	}
	if call.Index.TopK > 0 {
		overrides["top_k"] = call.Index.TopK
	}
	if call.Operation == OpIndexConfig {
		overrides["overwrite"] = call.Index.Overwrite
	}
	for key, value := range call.Overrides {
		overrides[key] = value
	}
	return core.Request{Text: subject.String(), Overrides: overrides}
}

// renderRequest assembles the prompt sections into the wire request. The
// system preamble carries contexts and examples, the user text carries the
// live query terminated by the instruction.
func renderRequest(parts PromptParts, call Call) core.Request {
	var system strings.Builder
	system.WriteString(metaInstruction)
	for _, section := range []string{parts.Static, parts.Dynamic} {
		if section != "" {
			system.WriteString("\n")
			system.WriteString(section)
			system.WriteString("\n")
		}
	}
	if parts.Additional != "" {
		system.WriteString("\n[ADDITIONAL CONTEXT]\n")
		system.WriteString(parts.Additional)
		system.WriteString("\n")
	}
	if len(parts.Examples) > 0 {
		system.WriteString("\n[EXAMPLES]\n")
		for _, example := range parts.Examples {
			system.WriteString(example)
			system.WriteString("\n")
		}
	}

	var user strings.Builder
	if strings.Contains(parts.Input, "=>") {
		user.WriteString("[LAST TASK]\n")
	}
	user.WriteString(parts.Input)
	if parts.Instruction != "" {
		user.WriteString("\n[INSTRUCTION]\n")
		user.WriteString(parts.Instruction)
	}
	if parts.TemplateSuffix != "" {
		user.WriteString("\n[[PLACEHOLDER]]\n")
		user.WriteString(parts.TemplateSuffix)
		user.WriteString("\nOnly generate content for the placeholder `[[PLACEHOLDER]]` following the instructions and context information. Do NOT write `[[PLACEHOLDER]]` or anything else in your output.\n")
	}

	return core.Request{
		System:    system.String(),
		Text:      user.String(),
		Stop:      call.Stop,
		Overrides: call.Overrides,
	}
}
