// cmd/soulctl/main.go
// Offline tooling for the derivation and compatibility engines

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/imadgeboyega/soulbond-backend/internal/assessment"
	"github.com/imadgeboyega/soulbond-backend/internal/behavior"
	"github.com/imadgeboyega/soulbond-backend/internal/common/utils"
	"github.com/imadgeboyega/soulbond-backend/internal/dating"
	"github.com/imadgeboyega/soulbond-backend/internal/profile"
)

var rootCmd = &cobra.Command{
	Use:           "soulctl",
	Short:         "Behavioral profile and compatibility tooling",
	Long:          `Derive behavioral profiles from quiz answers and score user pairs without a running server.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var deriveCmd = &cobra.Command{
	Use:   "derive <answers.yaml|answers.json>",
	Short: "Derive a behavioral profile from an answers file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		answers, err := readAnswers(args[0])
		if err != nil {
			return err
		}

		withTraits, _ := cmd.Flags().GetBool("traits")
		derived := behavior.Derive(answers)
		if !withTraits {
			return writeJSON(cmd.OutOrStdout(), derived)
		}

		positive, traumas := behavior.CollectTraits(answers)
		return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
			"behavioralProfile": derived,
			"positive":          nonNil(positive),
			"traumas":           nonNil(traumas),
			"skipped":           nonNil(answers.Skipped()),
		})
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score <me.json> <target.json>",
	Short: "Score how compatible the second user is for the first",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		me, err := readUser(args[0])
		if err != nil {
			return err
		}
		target, err := readUser(args[1])
		if err != nil {
			return err
		}

		result := dating.ScoreCompatibility(me, target)
		return writeJSON(cmd.OutOrStdout(), dating.CompatibilityResponse{
			UserID:      me.ID,
			TargetID:    target.ID,
			MatchResult: result,
		})
	},
}

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Print the embedded question catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := assessment.DefaultCatalog()
		if err != nil {
			return err
		}

		draw, _ := cmd.Flags().GetBool("draw")
		if !draw {
			return yaml.NewEncoder(cmd.OutOrStdout()).Encode(catalog)
		}

		seed, _ := cmd.Flags().GetInt64("seed")
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		return writeJSON(cmd.OutOrStdout(), catalog.Draw(rand.New(rand.NewSource(seed))))
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token <user-id>",
	Short: "Issue an access token for local testing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		secret, _ := cmd.Flags().GetString("secret")
		ttl, _ := cmd.Flags().GetDuration("ttl")
		if secret == "" {
			secret = os.Getenv("JWT_SECRET")
		}
		if secret == "" {
			return fmt.Errorf("a signing secret is required (--secret or JWT_SECRET)")
		}

		token, err := utils.GenerateJWT(utils.NewAccessClaims(args[0], "soulctl", ttl), secret)
		if err != nil {
			return fmt.Errorf("failed to sign token: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	deriveCmd.Flags().Bool("traits", false, "Also print the free-text trait lists")

	questionsCmd.Flags().Bool("draw", false, "Print one drawn question set instead of the catalog")
	questionsCmd.Flags().Int64("seed", 0, "Random seed for --draw")

	tokenCmd.Flags().String("secret", "", "HMAC signing secret (defaults to JWT_SECRET)")
	tokenCmd.Flags().Duration("ttl", time.Hour, "Token lifetime")

	rootCmd.AddCommand(
		deriveCmd,
		scoreCmd,
		questionsCmd,
		tokenCmd,
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

// readAnswers loads an answers document. The format follows the file extension.
func readAnswers(path string) (*behavior.Answers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read answers: %w", err)
	}

	var answers behavior.Answers
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &answers)
	default:
		err = json.Unmarshal(data, &answers)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &answers, nil
}

func readUser(path string) (*profile.User, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read user: %w", err)
	}

	var user profile.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if user.ID == "" {
		user.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return &user, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
