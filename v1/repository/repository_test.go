package repository

import (
	"context"
	"database/sql"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/tradelink-ops/logistics-backend/pkg/errors"
	"github.com/tradelink-ops/logistics-backend/v1/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }
func int64Ptr(v int64) *int64 { return &v }

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       db,
		DriverName: "postgres",
	}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open gorm db: %v", err)
	}
	return gormDB, mock
}

// countStatements counts every statement gorm sends through query and row callbacks
func countStatements(t *testing.T, db *gorm.DB) *int64 {
	var n int64
	inc := func(*gorm.DB) { atomic.AddInt64(&n, 1) }
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:count_query", inc))
	require.NoError(t, db.Callback().Row().After("gorm:row").Register("test:count_row", inc))
	return &n
}

func shipmentInsert(number int64, tracking string, date models.Date, status models.ShipmentStatus) models.ShipmentInsert {
	return models.ShipmentInsert{
		ShipmentNumber:  number,
		TrackingNumber:  tracking,
		OriginPort:      "Shanghai",
		DestinationPort: "Rotterdam",
		ShipmentDate:    date,
		ArrivalDate:     models.NewDate(date.Year(), date.Month(), date.Day()+20),
		Status:          status,
		TotalWeight:     1200.5,
	}
}

func seedWarehouse(t *testing.T, repos *Repositories, code, name string, capacity int64) models.Warehouse {
	w, err := repos.Warehouses.Create(context.Background(), models.WarehouseInsert{
		Code:     code,
		Name:     name,
		Capacity: capacity,
		Address:  "1 Dock Road",
		City:     "Hamburg",
		Country:  "DE",
		Email:    "ops@" + code + ".example",
		Phone:    "+49 40 000",
	})
	require.NoError(t, err)
	return w
}

func TestShipmentRepository_CreateThenGet(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	repos := NewRepositories(db)
	ctx := context.Background()

	in := shipmentInsert(1001, "TRK-1001", models.NewDate(2024, 3, 1), models.ShipmentStatusPending)
	in.ImporterCode = strPtr("CN")

	created, err := repos.Shipments.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, int64(1001), created.ShipmentNumber)

	got, err := repos.Shipments.Get(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, "TRK-1001", got.TrackingNumber)
	assert.Equal(t, "Shanghai", got.OriginPort)
	assert.Equal(t, "2024-03-01", got.ShipmentDate.String())
	assert.Equal(t, models.ShipmentStatusPending, got.Status)
	assert.Equal(t, 1200.5, got.TotalWeight)
	require.NotNil(t, got.ImporterCode)
	assert.Equal(t, "CN", *got.ImporterCode)
	assert.Nil(t, got.WarehouseCode)
}

func TestShipmentRepository_ListNaturalOrderAndFilters(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	repos := NewRepositories(db)
	ctx := context.Background()

	for _, in := range []models.ShipmentInsert{
		shipmentInsert(1, "TRK-A", models.NewDate(2024, 1, 10), models.ShipmentStatusPending),
		shipmentInsert(2, "TRK-B", models.NewDate(2024, 3, 10), models.ShipmentStatusInTransit),
		shipmentInsert(3, "XYZ-C", models.NewDate(2024, 2, 10), models.ShipmentStatusInTransit),
	} {
		_, err := repos.Shipments.Create(ctx, in)
		require.NoError(t, err)
	}

	t.Run("natural order is newest first", func(t *testing.T) {
		rows, err := repos.Shipments.List(ctx, ListOptions{})
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, []int64{2, 3, 1}, []int64{rows[0].ShipmentNumber, rows[1].ShipmentNumber, rows[2].ShipmentNumber})
	})

	t.Run("search is case-insensitive", func(t *testing.T) {
		rows, err := repos.Shipments.List(ctx, ListOptions{Search: "trk"})
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("status filter", func(t *testing.T) {
		rows, err := repos.Shipments.List(ctx, ListOptions{Status: string(models.ShipmentStatusInTransit)})
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("allow-listed sort", func(t *testing.T) {
		rows, err := repos.Shipments.List(ctx, ListOptions{SortField: "tracking_number", SortDir: SortDesc})
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "XYZ-C", rows[0].TrackingNumber)
	})

	t.Run("unknown sort field falls back to natural order", func(t *testing.T) {
		rows, err := repos.Shipments.List(ctx, ListOptions{SortField: "1; DROP TABLE shipments"})
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, int64(2), rows[0].ShipmentNumber)
	})

	t.Run("empty table lists as empty slice", func(t *testing.T) {
		rows, err := repos.Containers.List(ctx, ListOptions{})
		require.NoError(t, err)
		assert.NotNil(t, rows)
		assert.Empty(t, rows)
	})
}

func TestTable_UpdateOnlyTouchesSuppliedFields(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	repos := NewRepositories(db)
	ctx := context.Background()

	salary := decimal.RequireFromString("4200.50")
	_, err := repos.Employees.Create(ctx, models.EmployeeInsert{
		SSN:       77,
		FirstName: "Ada",
		LastName:  "Byron",
		Email:     "ada@example.com",
		Phone:     strPtr("555-0101"),
		Salary:    &salary,
	})
	require.NoError(t, err)

	updated, err := repos.Employees.Update(ctx, 77, models.EmployeeUpdate{
		LastName: strPtr("Lovelace"),
		Phone:    models.Null[string](),
	})
	require.NoError(t, err)
	assert.Equal(t, "Lovelace", updated.LastName)
	assert.Nil(t, updated.Phone)

	got, err := repos.Employees.Get(ctx, 77)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.FirstName)
	assert.Equal(t, "Lovelace", got.LastName)
	assert.Equal(t, "ada@example.com", got.Email)
	assert.Nil(t, got.Phone)
	require.NotNil(t, got.Salary)
	assert.True(t, salary.Equal(*got.Salary), "salary = %s", got.Salary)
}

func TestStatusHistoryRepository_KeyedByShipmentAndTime(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	repos := NewRepositories(db)
	ctx := context.Background()

	first := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)
	for _, in := range []models.ShipmentStatusHistoryInsert{
		{ShipmentNo: 1, ChangedAt: first, ChangerSSN: 11},
		{ShipmentNo: 1, ChangedAt: second, ChangerSSN: 22},
	} {
		_, err := repos.StatusHistory.Create(ctx, in)
		require.NoError(t, err)
	}

	got, err := repos.StatusHistory.Get(ctx, models.ShipmentStatusHistoryKey{ShipmentNo: 1, ChangedAt: second})
	require.NoError(t, err)
	assert.Equal(t, int64(22), got.ChangerSSN)

	updated, err := repos.StatusHistory.Update(ctx,
		models.ShipmentStatusHistoryKey{ShipmentNo: 1, ChangedAt: first},
		models.ShipmentStatusHistoryUpdate{ChangerSSN: int64Ptr(99)})
	require.NoError(t, err)
	assert.Equal(t, int64(99), updated.ChangerSSN)

	history, err := repos.StatusHistory.ListByShipment(ctx, 1)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, int64(22), history[0].ChangerSSN)
	assert.Equal(t, int64(99), history[1].ChangerSSN)

	_, err = repos.StatusHistory.Get(ctx, models.ShipmentStatusHistoryKey{ShipmentNo: 1})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestTable_UpdateWithEmptyChangeSetReturnsCurrentRow(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	repos := NewRepositories(db)
	ctx := context.Background()
	seedWarehouse(t, repos, "HAM", "Hamburg North", 5000)

	got, err := repos.Warehouses.Update(ctx, "HAM", models.WarehouseUpdate{})
	require.NoError(t, err)
	assert.Equal(t, "Hamburg North", got.Name)
}

func TestTable_UpdateMissingRowIsNotFound(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	repos := NewRepositories(db)

	_, err := repos.Warehouses.Update(context.Background(), "NOPE", models.WarehouseUpdate{Name: strPtr("x")})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestTable_GetMissingRowIsNotFound(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	repos := NewRepositories(db)

	_, err := repos.Shipments.Get(context.Background(), 404)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Equal(t, `shipments "404" not found`, err.Error())
}

func TestTable_EmptyKeyIssuesNoQuery(t *testing.T) {
	db, mock := setupMockDB(t)
	repos := NewRepositories(db)
	ctx := context.Background()

	_, err := repos.Warehouses.Get(ctx, "")
	assert.True(t, apperrors.IsNotFound(err))

	_, err = repos.Shipments.Get(ctx, 0)
	assert.True(t, apperrors.IsNotFound(err))

	_, err = repos.Inventory.Get(ctx, models.InventoryKey{ProductID: 1})
	assert.True(t, apperrors.IsNotFound(err))

	_, err = repos.Employees.Update(ctx, 0, models.EmployeeUpdate{FirstName: strPtr("x")})
	assert.True(t, apperrors.IsNotFound(err))

	_, err = repos.Shipments.GetDetail(ctx, 0)
	assert.True(t, apperrors.IsNotFound(err))

	deps, err := repos.Dependents.ListByEmployee(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, deps)

	lines, err := repos.ContainerProducts.ListByContainer(ctx, "  ")
	require.NoError(t, err)
	assert.Empty(t, lines)

	legs, err := repos.ShipmentTransportation.ListByShipment(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, legs)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTable_CreateRejectsDuplicateKey(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	repos := NewRepositories(db)
	seedWarehouse(t, repos, "HAM", "Hamburg North", 5000)

	_, err := repos.Warehouses.Create(context.Background(), models.WarehouseInsert{
		Code: "HAM", Name: "Again", Address: "a", City: "c", Country: "DE", Email: "x@y.example", Phone: "1",
	})
	require.Error(t, err)
	we, ok := apperrors.AsWriteError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ConstraintUniqueness, we.Kind)
	assert.Equal(t, "warehouses.code", we.Constraint)
}

func TestTable_CreateRejectsInvalidShape(t *testing.T) {
	db, mock := setupMockDB(t)
	repos := NewRepositories(db)

	_, err := repos.Inventory.Create(context.Background(), models.InventoryInsert{
		ProductID: 1, WarehouseCode: "HAM", Quantity: -5,
	})
	require.Error(t, err)
	we, ok := apperrors.AsWriteError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ConstraintValidation, we.Kind)
	assert.Contains(t, err.Error(), "quantity")

	_, err = repos.Transportation.Create(context.Background(), models.TransportationInsert{
		RegistrationNumber: "TR-1", Type: "Truck", State: "Parked",
	})
	we, ok = apperrors.AsWriteError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ConstraintValidation, we.Kind)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTable_StoreErrorsAreClassified(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind apperrors.ConstraintKind
	}{
		{"foreign key", &pgconn.PgError{Code: "23503", ConstraintName: "payments_shipment_no_fkey"}, apperrors.ConstraintForeignKey},
		{"uniqueness", &pgconn.PgError{Code: "23505", ConstraintName: "payments_pkey"}, apperrors.ConstraintUniqueness},
		{"not null", &pgconn.PgError{Code: "23502", ColumnName: "currency"}, apperrors.ConstraintNotNull},
		{"unknown", sql.ErrConnDone, apperrors.ConstraintUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			repos := NewRepositories(db)

			mock.ExpectQuery(`INSERT INTO "payments"`).WillReturnError(tt.err)

			_, err := repos.Payments.Create(context.Background(), models.PaymentInsert{
				TransactionReference: "TX-1",
				Amount:               decimal.NewFromInt(100),
				Currency:             "USD",
				PaymentDate:          models.NewDate(2024, 5, 1),
				PaymentStatus:        "Completed",
				ShipmentNo:           999,
				PaymentMethodID:      1,
			})
			require.Error(t, err)
			we, ok := apperrors.AsWriteError(err)
			require.True(t, ok)
			assert.Equal(t, tt.kind, we.Kind)
			assert.ErrorIs(t, err, tt.err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTable_ReadFailureIsRemoteReadError(t *testing.T) {
	db, mock := setupMockDB(t)
	repos := NewRepositories(db)

	mock.ExpectQuery(`SELECT \* FROM "employees"`).WillReturnError(sql.ErrConnDone)

	_, err := repos.Employees.List(context.Background(), ListOptions{})
	require.Error(t, err)
	var re *apperrors.RemoteReadError
	assert.ErrorAs(t, err, &re)
	assert.Equal(t, "employees", re.Entity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShipmentRepository_GetDetailIsOneStatement(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	repos := NewRepositories(db)
	ctx := context.Background()

	seedWarehouse(t, repos, "HAM", "Hamburg North", 5000)
	_, err := repos.Importers.Create(ctx, models.ImporterInsert{
		ISOCode: "CN", CompanyName: "Pearl River Trading", ContactPerson: "Li Wei",
		Email: "li@pearl.example", Country: "China", City: "Guangzhou", Address: "8 Harbour Rd", TaxID: "CN-0001",
	})
	require.NoError(t, err)

	in := shipmentInsert(42, "TRK-42", models.NewDate(2024, 4, 2), models.ShipmentStatusProcessing)
	in.ImporterCode = strPtr("CN")
	in.WarehouseCode = strPtr("HAM")
	_, err = repos.Shipments.Create(ctx, in)
	require.NoError(t, err)

	for _, number := range []string{"MSCU-2", "MSCU-1"} {
		_, err := repos.Containers.Create(ctx, models.ContainerInsert{
			ContainerNumber: number, SealNumber: "S-" + number, Weight: 20, ShipmentNo: int64Ptr(42),
		})
		require.NoError(t, err)
	}

	statements := countStatements(t, db)
	detail, err := repos.Shipments.GetDetail(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(1), atomic.LoadInt64(statements))

	assert.Equal(t, "TRK-42", detail.TrackingNumber)
	require.NotNil(t, detail.Importer)
	assert.Equal(t, "Pearl River Trading", detail.Importer.CompanyName)
	require.NotNil(t, detail.Warehouse)
	assert.Equal(t, "Hamburg North", detail.Warehouse.Name)
	require.Len(t, detail.Containers, 2)
	assert.Equal(t, "MSCU-1", detail.Containers[0].ContainerNumber)
}

func TestShipmentRepository_GetDetailWithoutRelations(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	repos := NewRepositories(db)
	ctx := context.Background()

	_, err := repos.Shipments.Create(ctx, shipmentInsert(7, "TRK-7", models.NewDate(2024, 4, 2), models.ShipmentStatusPending))
	require.NoError(t, err)

	detail, err := repos.Shipments.GetDetail(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, detail.Importer)
	assert.Nil(t, detail.Warehouse)
	assert.NotNil(t, detail.Containers)
	assert.Empty(t, detail.Containers)

	_, err = repos.Shipments.GetDetail(ctx, 8)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestEmployeeRepository_GetDetail(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	repos := NewRepositories(db)
	ctx := context.Background()

	seedWarehouse(t, repos, "HAM", "Hamburg North", 5000)
	_, err := repos.Employees.Create(ctx, models.EmployeeInsert{
		SSN: 10, FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com", WarehousesCode: strPtr("HAM"),
	})
	require.NoError(t, err)
	for _, name := range []string{"Walter", "Anne"} {
		_, err := repos.Dependents.Create(ctx, models.DependentInsert{EmployeeSSN: 10, Name: name, Relationship: strPtr("child")})
		require.NoError(t, err)
	}

	detail, err := repos.Employees.GetDetail(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "Grace", detail.FirstName)
	require.NotNil(t, detail.Warehouse)
	assert.Equal(t, "HAM", detail.Warehouse.Code)
	require.Len(t, detail.Dependents, 2)
	assert.Equal(t, "Anne", detail.Dependents[0].Name)

	deps, err := repos.Dependents.ListByEmployee(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, deps, 2)
}

func TestWarehouseRepository_StockLevels(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	repos := NewRepositories(db)
	ctx := context.Background()

	seedWarehouse(t, repos, "HAM", "Hamburg North", 1000)
	seedWarehouse(t, repos, "RTM", "Rotterdam East", 2000)
	for _, inv := range []models.InventoryInsert{
		{ProductID: 1, WarehouseCode: "HAM", Quantity: 300},
		{ProductID: 2, WarehouseCode: "HAM", Quantity: 550},
	} {
		_, err := repos.Inventory.Create(ctx, inv)
		require.NoError(t, err)
	}

	levels, err := repos.Warehouses.StockLevels(ctx)
	require.NoError(t, err)
	require.Len(t, levels, 2)
	assert.Equal(t, "HAM", levels[0].Code)
	assert.Equal(t, int64(850), levels[0].StoredQuantity)
	assert.Equal(t, "RTM", levels[1].Code)
	assert.Equal(t, int64(0), levels[1].StoredQuantity)
}

func TestInventoryRepository_ListItems(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	repos := NewRepositories(db)
	ctx := context.Background()

	seedWarehouse(t, repos, "HAM", "Hamburg North", 1000)
	_, err := repos.Products.Create(ctx, models.ProductInsert{ID: 1, Name: "Copper Wire", Price: decimal.NewFromInt(12)})
	require.NoError(t, err)
	_, err = repos.Inventory.Create(ctx, models.InventoryInsert{ProductID: 1, WarehouseCode: "HAM", Quantity: 40})
	require.NoError(t, err)
	// product 2 has stock but no product row
	_, err = repos.Inventory.Create(ctx, models.InventoryInsert{ProductID: 2, WarehouseCode: "HAM", Quantity: 10})
	require.NoError(t, err)

	items, err := repos.Inventory.ListItems(ctx, ListOptions{})
	require.NoError(t, err)
	require.Len(t, items, 2)

	byProduct := map[int64]models.InventoryItem{}
	for _, it := range items {
		byProduct[it.ProductID] = it
	}
	require.NotNil(t, byProduct[1].Product)
	assert.Equal(t, "Copper Wire", byProduct[1].Product.Name)
	require.NotNil(t, byProduct[1].Warehouse)
	assert.Nil(t, byProduct[2].Product)

	items, err = repos.Inventory.ListItems(ctx, ListOptions{Search: "copper"})
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestPaymentRepository_RevenueAndSummary(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	repos := NewRepositories(db)
	ctx := context.Background()

	revenue, err := repos.Payments.Revenue(ctx)
	require.NoError(t, err)
	assert.True(t, revenue.IsZero())

	_, err = repos.PaymentMethods.Create(ctx, models.PaymentMethodInsert{ID: 1, MethodName: "Wire"})
	require.NoError(t, err)
	for i, amount := range []int64{100, 250, 0} {
		_, err := repos.Payments.Create(ctx, models.PaymentInsert{
			TransactionReference: "TX-" + string(rune('A'+i)),
			Amount:               decimal.NewFromInt(amount),
			Currency:             "USD",
			PaymentDate:          models.NewDate(2024, 5, 1+i),
			PaymentStatus:        "Completed",
			ShipmentNo:           1,
			PaymentMethodID:      1,
		})
		require.NoError(t, err)
	}

	revenue, err = repos.Payments.Revenue(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(350).Equal(revenue), "revenue = %s", revenue)

	summary, err := repos.Payments.Summarize(ctx)
	require.NoError(t, err)
	require.Len(t, summary, 1)
	assert.Equal(t, int64(3), summary[0].Count)
	assert.True(t, decimal.NewFromInt(350).Equal(summary[0].Total))

	withMethod, err := repos.Payments.ListWithMethod(ctx, ListOptions{})
	require.NoError(t, err)
	require.Len(t, withMethod, 3)
	assert.Equal(t, "TX-C", withMethod[0].TransactionReference)
	require.NotNil(t, withMethod[0].Method)
	assert.Equal(t, "Wire", withMethod[0].Method.MethodName)
}

func TestContainerAndLegExpansions(t *testing.T) {
	db := SetupSQLiteTestDB(t)
	repos := NewRepositories(db)
	ctx := context.Background()

	_, err := repos.Products.Create(ctx, models.ProductInsert{ID: 5, Name: "Solar Panel", Price: decimal.NewFromInt(180)})
	require.NoError(t, err)
	_, err = repos.ContainerProducts.Create(ctx, models.ContainerProductInsert{ContainerNumber: "MSCU-9", ProductID: 5, Quantity: 12})
	require.NoError(t, err)

	lines, err := repos.ContainerProducts.ListByContainer(ctx, "MSCU-9")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.NotNil(t, lines[0].Product)
	assert.Equal(t, "Solar Panel", lines[0].Product.Name)

	_, err = repos.Transportation.Create(ctx, models.TransportationInsert{
		RegistrationNumber: "TR-1", Type: "Truck", State: models.TransportationAvailable, CapacityWeight: 18000,
	})
	require.NoError(t, err)
	_, err = repos.ShipmentTransportation.Create(ctx, models.ShipmentTransportationInsert{ShipmentNo: 3, TransportationNo: "TR-1"})
	require.NoError(t, err)

	legs, err := repos.ShipmentTransportation.ListByShipment(ctx, 3)
	require.NoError(t, err)
	require.Len(t, legs, 1)
	require.NotNil(t, legs[0].Vehicle)
	assert.Equal(t, models.TransportationAvailable, legs[0].Vehicle.State)

	vehicles, err := repos.Transportation.List(ctx, ListOptions{Status: string(models.TransportationInUse)})
	require.NoError(t, err)
	assert.Empty(t, vehicles)
}

func TestListOptions_CacheParams(t *testing.T) {
	cat := int64(3)
	params := ListOptions{Search: "  Copper ", Category: &cat, SortField: "name", SortDir: "DESC"}.CacheParams()
	assert.Equal(t, []interface{}{"q=copper", "category=3", "sort=name:desc"}, params)
	assert.Empty(t, ListOptions{}.CacheParams())
}
