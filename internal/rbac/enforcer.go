package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/fmcmkdict/LMA-App/internal/domain"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// policies maps each fixed staff role onto the resource:action pairs it may
// perform. The role model is deliberately static: the original system has five
// role flags and no runtime role editing.
var policies = [][3]string{
	{string(domain.CapEmployee), "leave", "create"},
	{string(domain.CapEmployee), "leave", "read"},
	{string(domain.CapEmployee), "leave", "edit"},
	{string(domain.CapEmployee), "balance", "read"},
	{string(domain.CapEmployee), "holiday", "read"},
	{string(domain.CapEmployee), "leave_type", "read"},
	{string(domain.CapEmployee), "department", "read"},
	{string(domain.CapEmployee), "unit", "read"},

	{string(domain.CapUnitHead), "leave", "recommend"},
	{string(domain.CapUnitHead), "leave", "read_any"},
	{string(domain.CapUnitHead), "employee", "read"},
	{string(domain.CapUnitHead), "balance", "read_any"},
	{string(domain.CapUnitHead), "audit", "read"},

	{string(domain.CapHOD), "leave", "approve"},
	{string(domain.CapHOD), "leave", "read_any"},
	{string(domain.CapHOD), "employee", "read"},
	{string(domain.CapHOD), "balance", "read_any"},
	{string(domain.CapHOD), "audit", "read"},

	{string(domain.CapManager), "leave", "approve"},
	{string(domain.CapManager), "leave", "read_any"},
	{string(domain.CapManager), "employee", "read"},
	{string(domain.CapManager), "balance", "read_any"},

	{string(domain.CapHR), "leave", "read_any"},
	{string(domain.CapHR), "employee", "register"},
	{string(domain.CapHR), "employee", "read"},
	{string(domain.CapHR), "employee", "update"},
	{string(domain.CapHR), "employee", "status"},
	{string(domain.CapHR), "balance", "read_any"},
	{string(domain.CapHR), "holiday", "manage"},
	{string(domain.CapHR), "leave_type", "manage"},
	{string(domain.CapHR), "department", "manage"},
	{string(domain.CapHR), "unit", "manage"},
	{string(domain.CapHR), "audit", "read"},

	{string(domain.CapSuperuser), "leave", "read"},
	{string(domain.CapSuperuser), "leave", "read_any"},
	{string(domain.CapSuperuser), "leave", "delete"},
	{string(domain.CapSuperuser), "leave", "edit"},
	{string(domain.CapSuperuser), "leave", "cancel"},
	{string(domain.CapSuperuser), "leave", "exhaust"},
	{string(domain.CapSuperuser), "leave", "recommend"},
	{string(domain.CapSuperuser), "leave", "approve"},
	{string(domain.CapSuperuser), "employee", "register"},
	{string(domain.CapSuperuser), "employee", "read"},
	{string(domain.CapSuperuser), "employee", "update"},
	{string(domain.CapSuperuser), "employee", "status"},
	{string(domain.CapSuperuser), "balance", "read_any"},
	{string(domain.CapSuperuser), "holiday", "manage"},
	{string(domain.CapSuperuser), "leave_type", "manage"},
	{string(domain.CapSuperuser), "department", "manage"},
	{string(domain.CapSuperuser), "unit", "manage"},
	{string(domain.CapSuperuser), "audit", "read"},
}

// Enforcer answers "may any of these capabilities perform action on resource".
type Enforcer struct {
	e *casbin.Enforcer
}

func NewEnforcer() (*Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	return &Enforcer{e: e}, nil
}

func (en *Enforcer) Allowed(caps domain.CapabilitySet, resource, action string) (bool, error) {
	for _, sub := range caps.Strings() {
		ok, err := en.e.Enforce(sub, resource, action)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
