package models

type UserRole string

const (
	UserRoleAdmin  UserRole = "A"
	UserRoleOwner  UserRole = "O"
	UserRoleMember UserRole = "M"
)

type ProjectCategory string

const (
	ProjectCategoryGeneral    ProjectCategory = "general"
	ProjectCategoryExcavation ProjectCategory = "excavation"
	ProjectCategoryTransport  ProjectCategory = "transport"
	ProjectCategoryLifting    ProjectCategory = "lifting"
)

func (c ProjectCategory) Valid() bool {
	switch c {
	case ProjectCategoryGeneral, ProjectCategoryExcavation, ProjectCategoryTransport, ProjectCategoryLifting:
		return true
	}
	return false
}

type AllocationMethod string

const (
	AllocationByHours    AllocationMethod = "by_hours"
	AllocationEqual      AllocationMethod = "equal"
	AllocationPercentage AllocationMethod = "percentage"
)

func (m AllocationMethod) Valid() bool {
	switch m {
	case AllocationByHours, AllocationEqual, AllocationPercentage:
		return true
	}
	return false
}

type DepreciationMethod string

const (
	DepreciationStraightLine      DepreciationMethod = "straight_line"
	DepreciationUnitsOfProduction DepreciationMethod = "units_of_production"
)

func (m DepreciationMethod) Valid() bool {
	return m == DepreciationStraightLine || m == DepreciationUnitsOfProduction
}

type MemberStatus string

const (
	MemberStatusActive   MemberStatus = "active"
	MemberStatusInactive MemberStatus = "inactive"
)

func (s MemberStatus) Valid() bool {
	return s == MemberStatusActive || s == MemberStatusInactive
}
