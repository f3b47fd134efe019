package main

import (
	"log"
	"os"

	"ai-interview-be/internal/model"
	"ai-interview-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"gorm.io/datatypes"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding Question Bank...")

	questions := []model.Question{
		{
			Id:         "q_intro_1",
			Skill:      "excel_basics",
			Difficulty: 2,
			Type:       "open",
			Prompt:     "We focus heavily on Microsoft Excel. Walk me through a recent workbook you built—what was the business goal and which Excel features did you lean on the most?",
			Weight:     1.0,
			Meta:       datatypes.JSON([]byte(`{}`)),
		},
		{
			Id:         "q_tech_1",
			Skill:      "excel_formulas",
			Difficulty: 2,
			Type:       "open",
			Prompt:     "A stakeholder needs to reconcile two customer lists with mismatched IDs. Explain how you would approach this in Excel, including the exact formulas or functions you would combine and any data-cleaning steps.",
			Weight:     1.0,
			Meta:       datatypes.JSON([]byte(`{}`)),
		},
		{
			Id:         "q_design_1",
			Skill:      "excel_analysis",
			Difficulty: 3,
			Type:       "open",
			Prompt:     "You receive a dump of 50k sales rows. Describe how you would build an analysis in Excel that surfaces the top 3 performance drivers, including pivot tables, charts, or Power Query steps you would rely on.",
			Weight:     1.0,
			Meta:       datatypes.JSON([]byte(`{}`)),
		},
		{
			Id:         "q_wrap_1",
			Skill:      "professionalism",
			Difficulty: 1,
			Type:       "behavioral",
			Prompt:     "To close, tell me about a time you coached someone on Excel—what made it effective and what would you do differently next time?",
			Weight:     1.0,
			Meta:       datatypes.JSON([]byte(`{}`)),
		},
	}

	for _, q := range questions {
		var existing model.Question
		if err := db.Where("id = ?", q.Id).First(&existing).Error; err == nil {
			color.Yellow("Question '%s' already exists, skipping...", q.Id)
			continue
		}

		if err := db.Create(&q).Error; err != nil {
			color.Red("Error creating question '%s': %v", q.Id, err)
		} else {
			color.Green("Created question: %s (%s, difficulty %d)", q.Id, q.Skill, q.Difficulty)
		}
	}

	color.Cyan("Question seeding completed!")
}
