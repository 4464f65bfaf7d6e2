package assessor

import (
	"errors"
	"fmt"
)

// StructuralError reports a page whose layout no longer matches the
// positional assumptions baked into the parser. It is fatal for the
// record and is never retried.
type StructuralError struct {
	PropertyID int64
	Stage      string
	Detail     string
}

func (e *StructuralError) Error() string {
	if e.PropertyID != 0 {
		return fmt.Sprintf("property %d: %s: %s", e.PropertyID, e.Stage, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Stage, e.Detail)
}

// tagProperty stamps the property id onto a structural error bubbling
// up from the table parser, which has no idea which record it is
// working on.
func tagProperty(propertyid int64, err error) error {
	var structural *StructuralError
	if errors.As(err, &structural) && structural.PropertyID == 0 {
		structural.PropertyID = propertyid
	}
	return err
}
