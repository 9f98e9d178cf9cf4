package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/uni-records/internal/models"
	"github.com/noah-isme/uni-records/internal/repository"
	"github.com/noah-isme/uni-records/internal/service"
	"github.com/noah-isme/uni-records/pkg/config"
	"github.com/noah-isme/uni-records/pkg/logger"
)

// app wires the interactive menus to the service layer. All business rules
// live in the services; this file only renders prompts and results.
type app struct {
	in       *bufio.Scanner
	students *service.StudentService
	admin    *service.AdminService
	attempts int
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	store, err := repository.NewStudentStore(cfg.Store.Path)
	if err != nil {
		logr.Sugar().Fatalw("failed to open datastore", "path", cfg.Store.Path, "error", err)
	}
	logr.Sugar().Debugw("datastore ready", "path", store.Path())

	rules := service.RecordRules{
		MaxSubjects:    cfg.Records.MaxSubjects,
		PassingAverage: cfg.Records.PassingAverage,
	}
	a := &app{
		in:       bufio.NewScanner(os.Stdin),
		students: service.NewStudentService(store, validator.New(), logr, rules),
		admin:    service.NewAdminService(store, logr, rules),
		attempts: cfg.Records.MaxLoginAttempts,
	}
	a.run()
}

func (a *app) prompt(label string) string {
	fmt.Print(label)
	if !a.in.Scan() {
		os.Exit(0)
	}
	return strings.TrimSpace(a.in.Text())
}

func (a *app) run() {
	for {
		fmt.Println("\n==============================")
		fmt.Println("      University System")
		fmt.Println("==============================")
		fmt.Println("1. Student")
		fmt.Println("2. Admin")
		fmt.Println("3. Exit")
		switch a.prompt("Select an option: ") {
		case "1":
			a.studentMenu()
		case "2":
			a.adminMenu()
		case "3":
			fmt.Println("Exiting... Goodbye!")
			return
		default:
			fmt.Println("Invalid option. Try again.")
		}
	}
}

func (a *app) studentMenu() {
	for {
		fmt.Println("\n------ Student Menu ------")
		fmt.Println("1. Register")
		fmt.Println("2. Login")
		fmt.Println("3. Back")
		switch a.prompt("Select an option: ") {
		case "1":
			a.register()
		case "2":
			if student := a.login(); student != nil {
				a.enrollmentMenu(student)
			}
		case "3":
			return
		default:
			fmt.Println("Invalid option. Try again.")
		}
	}
}

func (a *app) register() {
	fmt.Println("\n------ Student Registration ------")
	req := service.RegisterRequest{
		FirstName: a.prompt("First name: "),
		LastName:  a.prompt("Last name: "),
		Email:     strings.ToLower(a.prompt("Email (firstname.lastname@university.com): ")),
		Password:  a.prompt("Password (start uppercase, 5+ letters, end with 3 digits): "),
	}
	student, err := a.students.Register(context.Background(), req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Success: Student registered with ID %s.\n", student.ID)
}

// login gives the user a fixed number of attempts before aborting.
func (a *app) login() *models.Student {
	fmt.Println("\n------ Student Login ------")
	for attempt := 1; attempt <= a.attempts; attempt++ {
		email := strings.ToLower(a.prompt("Email: "))
		password := a.prompt("Password: ")
		student, err := a.students.Login(context.Background(), email, password)
		if err == nil {
			fmt.Printf("Welcome, %s!\n", student.FirstName)
			return student
		}
		fmt.Printf("Error: %v (attempt %d of %d)\n", err, attempt, a.attempts)
	}
	fmt.Println("Too many failed attempts.")
	return nil
}

func (a *app) enrollmentMenu(student *models.Student) {
	for {
		fmt.Printf("\n------ Subject Enrollment (%s %s | ID: %s) ------\n", student.FirstName, student.LastName, student.ID)
		fmt.Println("1. View Enrollment")
		fmt.Println("2. Enroll in Subject")
		fmt.Println("3. Remove Subject")
		fmt.Println("4. Change Password")
		fmt.Println("5. Logout")
		switch a.prompt("Select an option: ") {
		case "1":
			a.viewEnrollment(student)
		case "2":
			a.enrollSubject(student)
		case "3":
			a.removeSubject(student)
		case "4":
			a.changePassword(student)
		case "5":
			return
		default:
			fmt.Println("Invalid option. Try again.")
		}
	}
}

func (a *app) viewEnrollment(student *models.Student) {
	fresh, err := a.students.Get(context.Background(), student.ID)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	*student = *fresh

	fmt.Println("\n------ Your Enrollment ------")
	if len(student.Subjects) == 0 {
		fmt.Println("No subjects enrolled.")
		return
	}
	for _, s := range student.Subjects {
		fmt.Printf("[%s] %s - Mark: %d, Grade: %s\n", s.ID, s.Name, s.Mark, s.Grade)
	}
	overview := a.students.Overview(*student)
	status := "FAIL"
	if overview.Passing {
		status = "PASS"
	}
	fmt.Printf("Average: %.2f (%s)\n", overview.AverageMark, status)
}

func (a *app) enrollSubject(student *models.Student) {
	fmt.Println("\n------ Enroll in Subject ------")
	name := a.prompt("Subject name: ")
	fresh, subject, err := a.students.EnrollSubject(context.Background(), student.ID, name)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	*student = *fresh
	fmt.Printf("Success: Enrolled in %s with Subject ID %s. Mark: %d, Grade: %s\n", subject.Name, subject.ID, subject.Mark, subject.Grade)
	fmt.Printf("You are now enrolled in %d out of %d subjects.\n", len(student.Subjects), a.students.Rules().MaxSubjects)
}

func (a *app) removeSubject(student *models.Student) {
	fmt.Println("\n------ Remove Subject ------")
	if len(student.Subjects) == 0 {
		fmt.Println("No subjects to remove.")
		return
	}
	for _, s := range student.Subjects {
		fmt.Printf("[%s] %s\n", s.ID, s.Name)
	}
	subjectID := a.prompt("Enter Subject ID to remove: ")
	fresh, err := a.students.RemoveSubject(context.Background(), student.ID, subjectID)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	*student = *fresh
	fmt.Println("Success: Subject removed.")
}

func (a *app) changePassword(student *models.Student) {
	fmt.Println("\n------ Change Password ------")
	req := service.ChangePasswordRequest{
		NewPassword:     a.prompt("New password: "),
		ConfirmPassword: a.prompt("Confirm password: "),
	}
	fresh, err := a.students.ChangePassword(context.Background(), student.ID, req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	*student = *fresh
	fmt.Println("Success: Password changed.")
}

func (a *app) adminMenu() {
	for {
		fmt.Println("\n------ Admin Menu ------")
		fmt.Println("1. List Students")
		fmt.Println("2. Remove Student")
		fmt.Println("3. Group Students by Grade")
		fmt.Println("4. Partition Students by Pass/Fail")
		fmt.Println("5. Export Student Overview")
		fmt.Println("6. Clear All Student Data")
		fmt.Println("7. Back")
		switch a.prompt("Select an option: ") {
		case "1":
			a.listStudents()
		case "2":
			a.removeStudent()
		case "3":
			a.groupByGrade()
		case "4":
			a.partitionPassFail()
		case "5":
			a.exportOverview()
		case "6":
			a.clearAll()
		case "7":
			return
		default:
			fmt.Println("Invalid option. Try again.")
		}
	}
}

func (a *app) listStudents() {
	fmt.Println("\n------ All Students ------")
	students, err := a.admin.List(context.Background())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if len(students) == 0 {
		fmt.Println("No students found.")
		return
	}
	for _, s := range students {
		status := "FAIL"
		if s.Passing {
			status = "PASS"
		}
		fmt.Printf("%s | %s %s | %s | Subjects: %d | Avg: %.2f (%s)\n",
			s.ID, s.FirstName, s.LastName, s.Email, len(s.Subjects), s.AverageMark, status)
	}
}

func (a *app) removeStudent() {
	fmt.Println("\n------ Remove Student ------")
	id := a.prompt("Enter Student ID to remove: ")
	if err := a.admin.RemoveStudent(context.Background(), id); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println("Success: Student removed.")
}

func (a *app) groupByGrade() {
	fmt.Println("\n------ Group Students by Grade ------")
	groups, err := a.admin.GroupByDominantGrade(context.Background())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	for _, group := range groups {
		fmt.Printf("Grade %s:\n", group.Grade)
		if len(group.Students) == 0 {
			fmt.Println("  (none)")
			continue
		}
		for _, m := range group.Students {
			fmt.Printf("  %s | %s %s | Avg %.2f\n", m.ID, m.FirstName, m.LastName, m.AverageMark)
		}
	}
}

func (a *app) partitionPassFail() {
	fmt.Println("\n------ Partition Students by Pass/Fail ------")
	partition, err := a.admin.PartitionPassFail(context.Background())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	printSide := func(label string, side []models.StudentOverview) {
		fmt.Printf("%s:\n", label)
		if len(side) == 0 {
			fmt.Println("  (none)")
			return
		}
		for _, s := range side {
			fmt.Printf("  %s | %s %s | Avg %.2f\n", s.ID, s.FirstName, s.LastName, s.AverageMark)
		}
	}
	printSide("PASS", partition.Passing)
	printSide("FAIL", partition.Failing)
}

func (a *app) exportOverview() {
	fmt.Println("\n------ Export Student Overview ------")
	format := strings.ToLower(a.prompt("Format (csv/pdf): "))
	raw, _, err := a.admin.ExportOverview(context.Background(), format)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	filename := "students-overview." + format
	if err := os.WriteFile(filename, raw, 0o644); err != nil {
		fmt.Printf("Error: failed to write %s: %v\n", filename, err)
		return
	}
	fmt.Printf("Success: Report written to %s.\n", filename)
}

func (a *app) clearAll() {
	fmt.Println("\n------ Clear All Student Data ------")
	if a.prompt("Type 'CONFIRM' to permanently delete all student data: ") != "CONFIRM" {
		fmt.Println("Operation cancelled.")
		return
	}
	if err := a.admin.ClearAll(context.Background()); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println("Success: All student data cleared.")
}
