package commands

// Per-operation role whitelists. These are explicit allow lists, not a
// ranked hierarchy: Editor can send work back but cannot approve it.
var (
	changeRequesterRoles = []string{"Editor", "Approver", "Publisher", "Admin"}
	approverRoles        = []string{"Approver", "Publisher", "Admin"}
	publisherRoles       = []string{"Publisher", "Admin"}
	schedulerRoles       = []string{"Approver", "Publisher", "Admin"}
)

func roleAllowed(role string, allowed []string) bool {
	for _, candidate := range allowed {
		if candidate == role {
			return true
		}
	}
	return false
}
