package contracts

// InvariantLevel is the severity of one diagnostic check.
type InvariantLevel string

const (
	LevelPass InvariantLevel = "PASS"
	LevelWarn InvariantLevel = "WARN"
	LevelFail InvariantLevel = "FAIL"
)

// InvariantResult is one diagnostic produced by the invariants
// checker. Diagnostics feed monitoring, never control flow.
type InvariantResult struct {
	Name    string         `json:"name"`
	Level   InvariantLevel `json:"level"`
	Message string         `json:"message"`
}
