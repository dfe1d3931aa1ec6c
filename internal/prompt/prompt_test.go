package prompt

import "testing"

func TestAuto(t *testing.T) {
	var c Confirmer = Auto(true)
	if ok, err := c.Confirm("continue?"); !ok || err != nil {
		t.Errorf("expected yes, got %v %v", ok, err)
	}
	c = Auto(false)
	if ok, _ := c.Confirm("continue?"); ok {
		t.Error("expected no")
	}
}
