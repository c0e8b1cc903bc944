package models

import (
	"bitbucket.org/mmdatafocus/fleetcost_backend/config"
)

func MigrateTable() error {
	db := config.GetDB()
	return db.AutoMigrate(
		&Business{},
		&User{},
		&Project{},
		&ProjectMember{},
		&Equipment{},
		&OperatingParameter{},
		&ParameterExpense{},
	)
}
