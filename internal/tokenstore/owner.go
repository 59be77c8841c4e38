package tokenstore

// Owner names one of the two mutually exclusive credential slots.
type Owner string

const (
	Consultant Owner = "consultant"
	Admin      Owner = "admin"
)

// DefaultPriority is the order in which slots are consulted when a request
// needs a bearer token. A stale admin token left behind by an earlier admin
// session never shadows a consultant login.
var DefaultPriority = []Owner{Consultant, Admin}

// Owners lists every slot.
func Owners() []Owner {
	return []Owner{Consultant, Admin}
}

func (o Owner) String() string { return string(o) }

func (o Owner) Valid() bool {
	switch o {
	case Consultant, Admin:
		return true
	default:
		return false
	}
}
