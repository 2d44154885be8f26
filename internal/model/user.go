package model

// Role is the caller's role as carried in the identity token.  Callers
// without a token are RoleAnonymous.
type Role string

const (
    RoleAnonymous Role = "anonymous"
    RoleOrganizer Role = "organizer"
    RoleAdmin     Role = "admin"
)

// Valid reports whether r is a role a token may carry.  Anonymous is never
// issued in a token.
func (r Role) Valid() bool {
    return r == RoleOrganizer || r == RoleAdmin
}

// Identity is the caller resolved at the HTTP boundary.
//
// Fields:
//  Subject – token subject, empty for anonymous callers.
//  Role    – resolved role.
type Identity struct {
    Subject string
    Role    Role
}

// Anonymous is the identity of a caller that sent no token.
var Anonymous = Identity{Role: RoleAnonymous}

// IsAnonymous reports whether the caller presented no credentials.
func (i Identity) IsAnonymous() bool { return i.Role == RoleAnonymous }

// Capability is a static predicate over identities used to guard routes.
type Capability struct {
    Name  string
    Roles []Role
}

// Allows reports whether the identity holds one of the capability's roles.
func (c Capability) Allows(id Identity) bool {
    for _, r := range c.Roles {
        if id.Role == r {
            return true
        }
    }
    return false
}

var (
    CanViewBookings    = Capability{Name: "view_bookings", Roles: []Role{RoleOrganizer, RoleAdmin}}
    CanApproveBookings = Capability{Name: "approve_bookings", Roles: []Role{RoleAdmin}}
    CanViewStats       = Capability{Name: "view_stats", Roles: []Role{RoleAdmin}}
)
