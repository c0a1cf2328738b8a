package engine

import (
	"fmt"
	"strings"
)

const fallbackContact = "the server moderators"

func warningMessage(guildName string, contacts []string) string {
	where := "this server"
	if guildName != "" {
		where = "**" + guildName + "**"
	}

	var named []string
	for _, c := range contacts {
		if c = strings.TrimSpace(c); c != "" {
			named = append(named, c)
		}
	}
	contact := fallbackContact
	if len(named) > 0 {
		contact = strings.Join(named, " or ")
	}

	return fmt.Sprintf("You are being banned from %s because your name impersonates a member of the server staff. "+
		"If you believe this is a mistake, contact %s to appeal.", where, contact)
}

func banReason(c Candidate) string {
	return fmt.Sprintf("Impersonation auto-ban: nickname %q, username %q", c.Nickname, c.Username)
}
