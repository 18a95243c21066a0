package enums

// ActorRole is the role string supplied by the identity edge for the acting
// staff member. Role management lives outside this service, so unknown values
// are passed through rather than rejected; the constants below cover the
// roles the stock policy cares about.
type ActorRole string

const (
	ActorRoleAdmin        ActorRole = "admin"
	ActorRoleManager      ActorRole = "manager"
	ActorRoleHousekeeping ActorRole = "housekeeping"
	ActorRoleReception    ActorRole = "reception"
	ActorRoleMaintenance  ActorRole = "maintenance"
)

// String implements fmt.Stringer.
func (r ActorRole) String() string {
	return string(r)
}
