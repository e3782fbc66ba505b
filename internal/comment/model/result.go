package model

type DeletionResult int

const (
	Deleted DeletionResult = iota + 1
	NotFound
)

func (r DeletionResult) String() string {
	switch r {
	case Deleted:
		return "deleted"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
