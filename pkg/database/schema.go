package database

import (
	"context"
	"fmt"
)

// CreateSchema creates the database schema for the portal services
func (db *DB) CreateSchema(ctx context.Context) error {
	db.logger.Info("Creating database schema...")

	// Create extension for UUID generation
	if err := db.createExtensions(ctx); err != nil {
		return fmt.Errorf("failed to create extensions: %w", err)
	}

	// Create tables
	tables := []string{
		createUsersTable,
		createMedicationsTable,
		createMedicationRemindersTable,
		createCarePlansTable,
		createGoalsTable,
		createPlanTasksTable,
		createNotificationsTable,
		createNotificationPreferencesTable,
	}

	for _, table := range tables {
		if _, err := db.ExecContext(ctx, table); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	// Create indexes
	indexes := []string{
		createUsersIndexes,
		createMedicationsIndexes,
		createCarePlansIndexes,
		createGoalsIndexes,
		createNotificationsIndexes,
	}

	for _, index := range indexes {
		if _, err := db.ExecContext(ctx, index); err != nil {
			return fmt.Errorf("failed to create indexes: %w", err)
		}
	}

	db.logger.Info("Database schema created successfully")
	return nil
}

// createExtensions creates required PostgreSQL extensions
func (db *DB) createExtensions(ctx context.Context) error {
	extensions := []string{
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	}

	for _, ext := range extensions {
		if _, err := db.ExecContext(ctx, ext); err != nil {
			return fmt.Errorf("failed to create extension: %w", err)
		}
	}

	return nil
}

// SQL DDL statements for table creation
const (
	createUsersTable = `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			role VARCHAR(20) NOT NULL,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			phone VARCHAR(30),
			specialty VARCHAR(100),
			is_active BOOLEAN DEFAULT TRUE,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		);`

	createMedicationsTable = `
		CREATE TABLE IF NOT EXISTS medications (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			patient_id UUID NOT NULL REFERENCES users(id),
			prescriber_id UUID NOT NULL REFERENCES users(id),
			name VARCHAR(200) NOT NULL,
			dosage VARCHAR(100) NOT NULL,
			frequency VARCHAR(200) NOT NULL,
			instructions TEXT,
			start_date TIMESTAMP WITH TIME ZONE NOT NULL,
			end_date TIMESTAMP WITH TIME ZONE,
			is_active BOOLEAN DEFAULT TRUE,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		);`

	createMedicationRemindersTable = `
		CREATE TABLE IF NOT EXISTS medication_reminders (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			medication_id UUID NOT NULL REFERENCES medications(id) ON DELETE CASCADE,
			hour SMALLINT NOT NULL CHECK (hour >= 0 AND hour <= 23),
			minute SMALLINT NOT NULL CHECK (minute >= 0 AND minute <= 59),
			position SMALLINT NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		);`

	createCarePlansTable = `
		CREATE TABLE IF NOT EXISTS care_plans (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			patient_id UUID NOT NULL REFERENCES users(id),
			provider_id UUID NOT NULL REFERENCES users(id),
			title VARCHAR(200) NOT NULL,
			description TEXT,
			status VARCHAR(20) NOT NULL DEFAULT 'active',
			progress SMALLINT NOT NULL DEFAULT 0 CHECK (progress >= 0 AND progress <= 100),
			start_date TIMESTAMP WITH TIME ZONE NOT NULL,
			end_date TIMESTAMP WITH TIME ZONE,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		);`

	createGoalsTable = `
		CREATE TABLE IF NOT EXISTS goals (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			plan_id UUID NOT NULL REFERENCES care_plans(id),
			description TEXT NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'not_started',
			progress SMALLINT NOT NULL DEFAULT 0 CHECK (progress >= 0 AND progress <= 100),
			target_date TIMESTAMP WITH TIME ZONE,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		);`

	createPlanTasksTable = `
		CREATE TABLE IF NOT EXISTS plan_tasks (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			plan_id UUID NOT NULL REFERENCES care_plans(id),
			description TEXT NOT NULL,
			completed BOOLEAN DEFAULT FALSE,
			due_date TIMESTAMP WITH TIME ZONE,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		);`

	createNotificationsTable = `
		CREATE TABLE IF NOT EXISTS notifications (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID NOT NULL REFERENCES users(id),
			type VARCHAR(50) NOT NULL,
			title VARCHAR(200) NOT NULL,
			message TEXT NOT NULL,
			resource_id UUID,
			read BOOLEAN DEFAULT FALSE,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		);`

	createNotificationPreferencesTable = `
		CREATE TABLE IF NOT EXISTS notification_preferences (
			user_id UUID PRIMARY KEY REFERENCES users(id),
			email_reminders BOOLEAN DEFAULT TRUE,
			sms_reminders BOOLEAN DEFAULT FALSE,
			push_notifications BOOLEAN DEFAULT TRUE,
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		);`
)

// SQL DDL statements for index creation
const (
	createUsersIndexes = `
		CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
		CREATE INDEX IF NOT EXISTS idx_users_role ON users(role);`

	createMedicationsIndexes = `
		CREATE INDEX IF NOT EXISTS idx_medications_patient ON medications(patient_id);
		CREATE INDEX IF NOT EXISTS idx_medications_prescriber ON medications(prescriber_id);
		CREATE INDEX IF NOT EXISTS idx_medication_reminders_medication ON medication_reminders(medication_id);`

	createCarePlansIndexes = `
		CREATE INDEX IF NOT EXISTS idx_care_plans_patient ON care_plans(patient_id);
		CREATE INDEX IF NOT EXISTS idx_care_plans_provider ON care_plans(provider_id);
		CREATE INDEX IF NOT EXISTS idx_care_plans_status ON care_plans(status);`

	createGoalsIndexes = `
		CREATE INDEX IF NOT EXISTS idx_goals_plan ON goals(plan_id);
		CREATE INDEX IF NOT EXISTS idx_plan_tasks_plan ON plan_tasks(plan_id);`

	createNotificationsIndexes = `
		CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id);
		CREATE INDEX IF NOT EXISTS idx_notifications_unread ON notifications(user_id) WHERE read = FALSE;`
)
