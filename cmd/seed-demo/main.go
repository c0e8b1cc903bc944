package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/fleetcost_backend/config"
	"bitbucket.org/mmdatafocus/fleetcost_backend/models"
	"bitbucket.org/mmdatafocus/fleetcost_backend/utils"
	"github.com/shopspring/decimal"
)

// Seeds one demo business with a project, equipment, cost parameters, and
// members, so reports can be exercised against a fresh database.
func main() {
	ownerUsername := flag.String("owner-username", "demo-owner", "Username for the demo business owner")
	ownerPassword := flag.String("owner-password", "", "Required: password for the demo business owner")
	businessName := flag.String("business-name", "Demo Fleet Co", "Name of the demo business")
	flag.Parse()

	if strings.TrimSpace(*ownerPassword) == "" {
		fmt.Fprintln(os.Stderr, "--owner-password is required")
		os.Exit(1)
	}

	config.ConnectDatabaseWithRetry()
	if config.GetDB() == nil {
		fmt.Fprintln(os.Stderr, "database not initialized")
		os.Exit(1)
	}
	if err := models.MigrateTable(); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	business, err := models.CreateBusiness(ctx, &models.NewBusiness{
		Name:          *businessName,
		ContactName:   "Demo Owner",
		Email:         "owner@demo-fleet.example",
		Timezone:      "Asia/Yangon",
		OwnerUsername: *ownerUsername,
		OwnerPassword: *ownerPassword,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "create business: %v\n", err)
		os.Exit(1)
	}
	ctx = utils.SetBusinessIdInContext(ctx, business.ID.String())

	project, err := models.CreateProject(ctx, &models.NewProject{
		Name:                 "Hpakant Quarry",
		Description:          "Demo excavation project",
		Category:             models.ProjectCategoryExcavation,
		CostAllocationMethod: models.AllocationEqual,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "create project: %v\n", err)
		os.Exit(1)
	}

	if _, err := models.CreateEquipment(ctx, project.ID, &models.NewEquipment{
		Name:               "CAT 320 Excavator",
		PurchasePrice:      decimal.NewFromInt(10000000),
		AcquisitionDate:    time.Date(2020, time.January, 15, 0, 0, 0, 0, time.UTC),
		ServiceLifeYears:   10,
		SalvageValue:       decimal.NewFromInt(1000000),
		DepreciationMethod: models.DepreciationStraightLine,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "create equipment: %v\n", err)
		os.Exit(1)
	}
	if _, err := models.CreateEquipment(ctx, project.ID, &models.NewEquipment{
		Name:                  "Volvo A40 Hauler",
		PurchasePrice:         decimal.NewFromInt(6000000),
		AcquisitionDate:       time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC),
		ServiceLifeYears:      8,
		SalvageValue:          decimal.NewFromInt(600000),
		DepreciationMethod:    models.DepreciationUnitsOfProduction,
		ExpectedLifetimeHours: decimal.NewFromInt(18000),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "create equipment: %v\n", err)
		os.Exit(1)
	}

	if _, err := models.CreateOperatingParameter(ctx, project.ID, &models.NewOperatingParameter{
		OperatingHoursPerMonth: decimal.NewFromInt(200),
		FuelCostPerHour:        decimal.NewFromInt(30),
		MaintenanceCostPerHour: decimal.NewFromInt(20),
		InsuranceMonthly:       decimal.NewFromInt(5000),
		StaffSalariesMonthly:   decimal.NewFromInt(60000),
		FacilityRentMonthly:    decimal.NewFromInt(15000),
		OtherExpenses: []models.NewExpense{
			{Description: "generator fuel", Amount: decimal.NewFromInt(2000)},
		},
	}); err != nil {
		fmt.Fprintf(os.Stderr, "create parameters: %v\n", err)
		os.Exit(1)
	}

	members := []models.NewProjectMember{
		{Name: "Aye Chan", Role: "operator", OwnershipShare: decimal.NewFromInt(60), OperatingHoursPerMonth: decimal.NewFromInt(120)},
		{Name: "Thiha", Role: "operator", OwnershipShare: decimal.NewFromInt(40), OperatingHoursPerMonth: decimal.NewFromInt(80)},
	}
	for i := range members {
		if _, err := models.AddProjectMember(ctx, project.ID, &members[i]); err != nil {
			fmt.Fprintf(os.Stderr, "add member: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("seeded business %s with project %d\n", business.ID, project.ID)
}
