package symbol

import (
	"fmt"

	"github.com/hupe1980/symgo/core"
)

// Operation is the closed enum of semantic operation kinds the dispatcher
// understands. Adding an operation means adding an enum value, a default
// instruction and an input renderer; operator sugar on Symbol is a thin
// call-through and carries no backend logic of its own.
type Operation int

const (
	// OpEquals asks whether two values are semantically equivalent.
	OpEquals Operation = iota
	// OpContains asks whether the subject contains the operand.
	OpContains
	// OpCombine merges subject and operand into a single coherent value.
	OpCombine
	// OpReplace substitutes occurrences of one value with another.
	OpReplace
	// OpCompare orders two values under a comparison operator.
	OpCompare
	// OpNegate negates the meaning of the subject.
	OpNegate
	// OpInvert inverts the relationship expressed by the subject.
	OpInvert
	// OpLogic evaluates a boolean connective (and/or/xor) over two values.
	OpLogic
	// OpInclude folds new information into the subject.
	OpInclude
	// OpGetItem retrieves an element of the subject by key or index.
	OpGetItem
	// OpSetItem writes an element of the subject by key or index.
	OpSetItem
	// OpDelItem removes an element of the subject by key or index.
	OpDelItem
	// OpQuery answers a free-form question over the subject.
	OpQuery
	// OpIsInstanceOf asks whether the subject is of a described kind.
	OpIsInstanceOf
	// OpClean removes noise and artifacts from the subject text.
	OpClean
	// OpEmbed turns the subject text into an embedding vector.
	OpEmbed
	// OpIndexAdd upserts an entry into a named vector index.
	OpIndexAdd
	// OpIndexSearch queries a named vector index for nearest entries.
	OpIndexSearch
	// OpIndexConfig creates or configures a named vector index.
	OpIndexConfig
)

// String returns the operation's identifier.
func (op Operation) String() string {
	switch op {
	case OpEquals:
		return "equals"
	case OpContains:
		return "contains"
	case OpCombine:
		return "combine"
	case OpReplace:
		return "replace"
	case OpCompare:
		return "compare"
	case OpNegate:
		return "negate"
	case OpInvert:
		return "invert"
	case OpLogic:
		return "logic"
	case OpInclude:
		return "include"
	case OpGetItem:
		return "getitem"
	case OpSetItem:
		return "setitem"
	case OpDelItem:
		return "delitem"
	case OpQuery:
		return "query"
	case OpIsInstanceOf:
		return "isinstanceof"
	case OpClean:
		return "clean"
	case OpEmbed:
		return "embed"
	case OpIndexAdd:
		return "index_add"
	case OpIndexSearch:
		return "index_search"
	case OpIndexConfig:
		return "index_config"
	default:
		return "unknown"
	}
}

// capability names the backend capability the operation targets by default.
func (op Operation) capability() string {
	switch op {
	case OpEmbed:
		return core.CapabilityEmbedding
	case OpIndexAdd, OpIndexSearch, OpIndexConfig:
		return core.CapabilityIndexing
	default:
		return core.CapabilityReasoning
	}
}

// structured reports whether the operation bypasses prompt assembly and
// sends raw input plus structured overrides instead.
func (op Operation) structured() bool {
	switch op {
	case OpEmbed, OpIndexAdd, OpIndexSearch, OpIndexConfig:
		return true
	default:
		return false
	}
}

// instruction returns the default instruction text for the operation.
func (op Operation) instruction() string {
	switch op {
	case OpEquals:
		return "Decide whether the two objects are equal or semantically equivalent. Answer only 'True' or 'False'."
	case OpContains:
		return "Decide whether the information of the second object is contained in the first. Answer only 'True' or 'False'."
	case OpCombine:
		return "Combine the two objects in a semantically meaningful way. Output only the combined result."
	case OpReplace:
		return "Replace every occurrence of the target in the text with the substitute. Output only the resulting text."
	case OpCompare:
		return "Evaluate the comparison between the two objects. Answer only 'True' or 'False'."
	case OpNegate:
		return "Negate the meaning of the following statement. Output only the negated statement."
	case OpInvert:
		return "Invert the relationship expressed by the following statement, swapping its direction. Output only the inverted statement."
	case OpLogic:
		return "Evaluate the logical connective over the two statements. Answer only 'True' or 'False'."
	case OpInclude:
		return "Incorporate the new information into the text so the result reads naturally. Output only the resulting text."
	case OpGetItem:
		return "Return only the element of the object selected by the given key or index."
	case OpSetItem:
		return "Set the element selected by the given key or index to the given value and output only the updated object."
	case OpDelItem:
		return "Remove the element selected by the given key or index and output only the updated object."
	case OpQuery:
		return "Answer the question using only the information in the context. Output only the answer."
	case OpIsInstanceOf:
		return "Decide whether the object is an instance of the described kind. Answer only 'True' or 'False'."
	case OpClean:
		return "Remove all typographic and formatting artifacts from the text without changing its meaning. Output only the cleaned text."
	default:
		return ""
	}
}

// renderInput builds the live query section for the operation from the
// subject and its operands. The trailing '=>' marks the position where the
// backend continues.
func (op Operation) renderInput(subject Symbol, operands []Symbol, operator string) string {
	arg := func(i int) string {
		if i < len(operands) {
			return operands[i].String()
		}
		return ""
	}
	switch op {
	case OpEquals:
		return fmt.Sprintf("%s == %s =>", subject, arg(0))
	case OpContains:
		return fmt.Sprintf("%s contains %s =>", subject, arg(0))
	case OpCombine:
		return fmt.Sprintf("%s + %s =>", subject, arg(0))
	case OpReplace:
		return fmt.Sprintf("text '%s' replace '%s' with '%s' =>", subject, arg(0), arg(1))
	case OpCompare:
		return fmt.Sprintf("%s %s %s =>", subject, operator, arg(0))
	case OpNegate:
		return fmt.Sprintf("negate '%s' =>", subject)
	case OpInvert:
		return fmt.Sprintf("invert '%s' =>", subject)
	case OpLogic:
		return fmt.Sprintf("%s %s %s =>", subject, operator, arg(0))
	case OpInclude:
		return fmt.Sprintf("text '%s' include '%s' =>", subject, arg(0))
	case OpGetItem:
		return fmt.Sprintf("%s[%s] =>", subject, arg(0))
	case OpSetItem:
		return fmt.Sprintf("%s[%s] = %s =>", subject, arg(0), arg(1))
	case OpDelItem:
		return fmt.Sprintf("delete %s[%s] =>", subject, arg(0))
	case OpQuery:
		return fmt.Sprintf("context '%s' question '%s' =>", subject, arg(0))
	case OpIsInstanceOf:
		return fmt.Sprintf("%s is instance of %s =>", subject, arg(0))
	case OpClean:
		return fmt.Sprintf("clean '%s' =>", subject)
	default:
		return subject.String()
	}
}
