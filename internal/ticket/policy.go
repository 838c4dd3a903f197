package ticket

type PrincipalType int

const (
	PrincipalRole PrincipalType = iota
	PrincipalMember
)

type Permission uint8

const (
	PermView Permission = 1 << iota
	PermSend
)

// Has reports whether all bits of q are set.
func (p Permission) Has(q Permission) bool { return p&q == q }

// Grant is one permission overwrite on a channel.
type Grant struct {
	PrincipalID string
	Type        PrincipalType
	Allow       Permission
	Deny        Permission
}

type AccessPolicy []Grant

// BuildAccessPolicy hides the channel from @everyone and opens it to the
// requester, the staff role and the bot. The @everyone role shares the guild id.
func BuildAccessPolicy(guildID, userID, roleID, botID string) AccessPolicy {
	return AccessPolicy{
		{PrincipalID: guildID, Type: PrincipalRole, Deny: PermView},
		{PrincipalID: userID, Type: PrincipalMember, Allow: PermView | PermSend},
		{PrincipalID: roleID, Type: PrincipalRole, Allow: PermView | PermSend},
		{PrincipalID: botID, Type: PrincipalMember, Allow: PermView | PermSend},
	}
}

// Grants returns the permissions allowed to a principal, or false if the
// policy doesn't mention it.
func (p AccessPolicy) Grants(principalID string) (allow, deny Permission, ok bool) {
	for _, g := range p {
		if g.PrincipalID == principalID {
			allow |= g.Allow
			deny |= g.Deny
			ok = true
		}
	}
	return
}
