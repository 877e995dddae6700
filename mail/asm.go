package mail

import (
	"github.com/neone/sendgrid-go/sgerrors"
	"github.com/neone/sendgrid-go/validation"
)

// ASM is the advanced suppression management (unsubscribe group) of an email.
type ASM struct {
	GroupID         int   `json:"group_id" validate:"gt=0"`
	GroupsToDisplay []int `json:"groups_to_display,omitempty" validate:"max=25,dive,gt=0"`
}

// Validate fails with sgerrors.InvalidASM if the group id is not positive or more
// than GroupsToDisplayLimit groups are displayed.
func (asm *ASM) Validate() error {
	return validation.StructAs(asm, sgerrors.InvalidASM)
}
