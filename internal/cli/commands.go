package cli

import (
	"fmt"

	"github.com/dhanushgc/HireMind/internal/dto"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a fresh question set (replaces any existing session)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		candidateId, jobId, err := session()
		if err != nil {
			return err
		}
		company, _ := cmd.Flags().GetString("company")

		res, err := newClient().Generate(cmd.Context(), dto.GenerateQuestionsRequest{
			CandidateId: candidateId,
			JobId:       jobId,
			CompanyId:   company,
		})
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), res)
	},
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show the next unanswered question",
	RunE: func(cmd *cobra.Command, _ []string) error {
		candidateId, jobId, err := session()
		if err != nil {
			return err
		}

		res, err := newClient().Next(cmd.Context(), dto.SessionQuery{CandidateId: candidateId, JobId: jobId})
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), res)
	},
}

var answerCmd = &cobra.Command{
	Use:   "answer [text]",
	Short: "Answer a question; without --question the next unanswered one is used",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		candidateId, jobId, err := session()
		if err != nil {
			return err
		}
		client := newClient()

		question, _ := cmd.Flags().GetString("question")
		if question == "" {
			next, err := client.Next(cmd.Context(), dto.SessionQuery{CandidateId: candidateId, JobId: jobId})
			if err != nil {
				return err
			}
			if next.InterviewComplete {
				return fmt.Errorf("interview already complete")
			}
			question = next.Question
		}

		res, err := client.Answer(cmd.Context(), dto.SubmitAnswerRequest{
			CandidateId: candidateId,
			JobId:       jobId,
			Question:    question,
			Answer:      args[0],
		})
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), res)
	},
}

var transcriptCmd = &cobra.Command{
	Use:   "transcript",
	Short: "Print the full question and answer transcript",
	RunE: func(cmd *cobra.Command, _ []string) error {
		candidateId, jobId, err := session()
		if err != nil {
			return err
		}

		res, err := newClient().Transcript(cmd.Context(), dto.SessionQuery{CandidateId: candidateId, JobId: jobId})
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), res)
	},
}

func init() {
	generateCmd.Flags().String("company", "", "company id (defaults to the service's configured company)")
	answerCmd.Flags().String("question", "", "exact question text being answered")

	rootCmd.AddCommand(generateCmd, nextCmd, answerCmd, transcriptCmd)
}
