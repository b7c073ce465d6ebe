package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"vivaha-be/internal/entities"
	"vivaha-be/internal/onboarding"
	"vivaha-be/internal/repository"
	"vivaha-be/internal/service"
)

const (
	testUserEmail    = "test@wedwise.com"
	testUserPassword = "password123"
	testUserName     = "Test User"

	seedConcurrency = 4
)

var exportOut string

var seedUserCmd = &cobra.Command{
	Use:   "seed-user",
	Short: "Create the local test account if it does not exist",
	RunE:  runSeedUser,
}

var seedAccountsCmd = &cobra.Command{
	Use:   "seed-accounts",
	Short: "Create onboarded sample accounts with wedding data",
	RunE:  runSeedAccounts,
}

var exportUsersCmd = &cobra.Command{
	Use:   "export-users",
	Short: "Print a summary of every account and export them as JSON",
	RunE:  runExportUsers,
}

func init() {
	exportUsersCmd.Flags().StringVar(&exportOut, "out", "all-users.json", "JSON output file")
}

// ensureUser creates the account unless the email is taken. It reports
// whether a new account was created.
func ensureUser(ctx context.Context, users repository.UserRepository, email, password, name string) (*entities.User, bool, error) {
	existing, err := users.FindByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, fmt.Errorf("hash password: %w", err)
	}
	user, err := users.Create(ctx, email, string(hash), name, entities.UserRoleBride)
	if errors.Is(err, repository.ErrDuplicate) {
		// Lost a race with a concurrent seed.
		user, err = users.FindByEmail(ctx, email)
		return user, false, err
	}
	return user, err == nil, err
}

func runSeedUser(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	user, created, err := ensureUser(ctx, repository.NewUserRepository(db), testUserEmail, testUserPassword, testUserName)
	if err != nil {
		return fmt.Errorf("seed test user: %w", err)
	}
	if created {
		log.Info().Str("user_id", user.ID).Msg("test user created")
	} else {
		log.Info().Str("user_id", user.ID).Msg("test user already exists")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Email: %s\nPassword: %s\n", testUserEmail, testUserPassword)
	return nil
}

type sampleAccount struct {
	Name          string
	Email         string
	Onboarding    entities.OnboardingData
	BachelorParty string // onboarding option ID
}

func sampleAccounts() []sampleAccount {
	budget := func(v float64) *float64 { return &v }
	guests := func(v int) *int { return &v }
	religious := func(v bool) *bool { return &v }
	return []sampleAccount{
		{
			Name:  "Sarah Anderson",
			Email: "sarah@test.com",
			Onboarding: entities.OnboardingData{
				Role:            entities.OnboardingRoleSelf,
				TopPriority:     []string{"Photography", "Venue", "Catering"},
				EstimatedBudget: budget(75000),
				GuestCount:      guests(150),
				WeddingCity:     "Los Angeles",
				WeddingState:    "CA",
				IsReligious:     religious(true),
				Religions:       []string{"Christian"},
				CeremonyType:    entities.CeremonyReligious,
			},
			BachelorParty: onboarding.OptIn,
		},
		{
			Name:  "Marcus Johnson",
			Email: "marcus@test.com",
			Onboarding: entities.OnboardingData{
				Role:            entities.OnboardingRoleSelf,
				TopPriority:     []string{"Venue", "Catering", "Music"},
				EstimatedBudget: budget(150000),
				GuestCount:      guests(200),
				WeddingCity:     "New York",
				WeddingState:    "NY",
				IsReligious:     religious(false),
				CeremonyType:    entities.CeremonySecular,
			},
			BachelorParty: onboarding.OptIn,
		},
		{
			Name:  "Priya Sharma",
			Email: "priya@test.com",
			Onboarding: entities.OnboardingData{
				Role:            entities.OnboardingRolePlanner,
				TopPriority:     []string{"Catering", "Decor"},
				EstimatedBudget: budget(60000),
				GuestCount:      guests(300),
				WeddingCity:     "Chicago",
				WeddingState:    "IL",
				IsReligious:     religious(true),
				Religions:       []string{"Hindu", "Sikh"},
				CeremonyType:    entities.CeremonyInterfaith,
				InterfaithPreferences: []entities.InterfaithPreference{
					{Religion: "Hindu", RitualsToInclude: []string{"Saptapadi"}},
					{Religion: "Sikh", RitualsToInclude: []string{"Laavan"}},
				},
			},
			BachelorParty: onboarding.OptOut,
		},
	}
}

func runSeedAccounts(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	users := repository.NewUserRepository(db)
	onboardingService := service.NewOnboardingService(users, service.NewWeddingService(repository.NewWeddingRepository(db)))

	accounts := sampleAccounts()
	failed := make([]bool, len(accounts))

	var g errgroup.Group
	g.SetLimit(seedConcurrency)
	for i, account := range accounts {
		i, account := i, account
		g.Go(func() error {
			if err := seedAccount(ctx, users, onboardingService, account); err != nil {
				log.Error().Err(err).Str("email", account.Email).Msg("failed to seed account")
				failed[i] = true
			}
			return nil
		})
	}
	_ = g.Wait()

	var failures int
	for i, account := range accounts {
		if failed[i] {
			failures++
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s / %s\n", account.Email, testUserPassword)
	}
	if failures > 0 {
		return fmt.Errorf("%d account(s) failed", failures)
	}
	return nil
}

func seedAccount(ctx context.Context, users repository.UserRepository, onboardingService service.OnboardingService, account sampleAccount) error {
	user, _, err := ensureUser(ctx, users, account.Email, testUserPassword, account.Name)
	if err != nil {
		return err
	}

	data := account.Onboarding
	if err := onboarding.BachelorPartyFor(&data).Select(account.BachelorParty); err != nil {
		return err
	}
	_, err = onboardingService.Save(ctx, user.ID, &data)
	return err
}

func runExportUsers(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	users, err := service.NewAdminService(repository.NewUserRepository(db)).ListUsers(ctx)
	if err != nil {
		return err
	}

	printUsers(cmd.OutOrStdout(), users)

	f, err := os.Create(exportOut)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := writeUsersJSON(f, users); err != nil {
		return fmt.Errorf("write %s: %w", exportOut, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d account(s) to %s\n", len(users), exportOut)
	return nil
}

func printUsers(w io.Writer, users []*entities.User) {
	for i, u := range users {
		admin, onboarded := "no", "incomplete"
		if u.IsAdmin {
			admin = "yes"
		}
		if u.OnboardingCompleted {
			onboarded = "complete"
		}
		fmt.Fprintf(w, "%d. %s <%s> role=%s admin=%s onboarding=%s created=%s\n",
			i+1, u.Name, u.Email, u.Role, admin, onboarded, u.CreatedAt.Format("2006-01-02"))
	}
}

// writeUsersJSON relies on entities.User never serializing the password hash.
func writeUsersJSON(w io.Writer, users []*entities.User) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(users)
}
