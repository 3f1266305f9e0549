package mixer

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/RadixSeven/MealPortionCalculator/internal/models"
)

func intPtr(v int) *int { return &v }

var _ = Describe("Mixer", func() {
	var (
		m   *Mixer
		req models.MixRequest
	)

	BeforeEach(func() {
		m = New(zap.NewNop())
		req = models.DefaultMixRequest(2000, 4)
	})

	Context("with default limits", func() {
		It("should fill carb headroom with Soylent and the rest with HLTH Code", func() {
			result, err := m.Mix(req)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.SoylentPortions).To(Equal(4.0))
			Expect(result.HLTHCodePortions).To(BeNumerically("~", 16.5, 1e-9))
			Expect(result.SoylentDryMass).To(Equal(120))
			Expect(result.HLTHCodeDryMass).To(Equal(286))
			Expect(result.WaterMass).To(Equal(1285))
			Expect(result.TotalMass).To(Equal(1691))
			Expect(result.MassPerPortion).To(Equal(423))
			Expect(result.CarbsPerPortion).To(Equal(12.0))
			Expect(*result.NextCarbLevel).To(Equal(12.5))
			Expect(*result.NextCarbLevelMass).To(Equal(441))
			Expect(result.TotalCalories).To(Equal(2000))
			Expect(result.Warnings).To(BeEmpty())
		})

		It("should return identical results for identical requests", func() {
			first, err := m.Mix(req)
			Expect(err).ToNot(HaveOccurred())
			second, err := m.Mix(req)
			Expect(err).ToNot(HaveOccurred())

			Expect(second).To(Equal(first))
		})
	})

	Context("when the carb cap limits Soylent", func() {
		It("should let HLTH Code supply the remaining calories", func() {
			req = models.DefaultMixRequest(900, 3)
			req.MaxCarbsPerPortion = 6

			result, err := m.Mix(req)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.SoylentPortions).To(Equal(1.5))
			Expect(result.HLTHCodePortions).To(BeNumerically("~", 7.875, 1e-9))
			Expect(result.SoylentDryMass).To(Equal(45))
			Expect(result.HLTHCodeDryMass).To(BeNumerically("~", 136.5, 0.5))
			Expect(result.TotalMass).To(Equal(810))
			Expect(result.MassPerPortion).To(Equal(270))
			Expect(result.CarbsPerPortion).To(Equal(6.0))
			Expect(*result.NextCarbLevel).To(Equal(6.5))
			Expect(*result.NextCarbLevelMass).To(Equal(292))
			Expect(result.TotalCalories).To(Equal(900))
			Expect(result.Warnings).To(BeEmpty())
		})
	})

	Context("when both ingredient caps bind", func() {
		It("should warn that the calorie target is out of reach and still mix", func() {
			core, logs := observer.New(zapcore.DebugLevel)
			m = New(zap.New(core))
			req.MaxSoylent = 60
			req.MaxHLTHCode = 52

			result, err := m.Mix(req)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.SoylentDryMass).To(Equal(60))
			Expect(result.HLTHCodeDryMass).To(Equal(52))
			Expect(result.TotalCalories).To(Equal(533))
			Expect(result.Warnings).To(HaveLen(1))
			Expect(result.Warnings[0]).To(ContainSubstring("2000 kcal"))
			Expect(logs.FilterMessage("Calorie target not reached").Len()).To(Equal(1))

			// Water makes up the default minimum portion.
			Expect(result.TotalMass).To(Equal(1080))
			Expect(result.WaterMass).To(Equal(1080 - 60 - 52))
			Expect(result.MassPerPortion).To(Equal(270))
		})
	})

	Context("with portion size limits", func() {
		It("should remove water to respect the max portion", func() {
			req.MinPortion = 0
			req.MaxPortion = intPtr(300)

			result, err := m.Mix(req)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.WaterMass).To(Equal(794))
			Expect(result.TotalMass).To(Equal(1200))
			Expect(result.MassPerPortion).To(Equal(300))
			Expect(*result.NextCarbLevelMass).To(Equal(312))
		})

		It("should add water to reach the min portion", func() {
			req.MinPortion = 500

			result, err := m.Mix(req)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.WaterMass).To(Equal(1594))
			Expect(result.TotalMass).To(Equal(2000))
			Expect(result.MassPerPortion).To(Equal(500))
		})

		It("should leave the mix alone when min is disabled and max is absent", func() {
			req.MinPortion = 0

			result, err := m.Mix(req)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.TotalMass).To(Equal(1691))
		})

		It("should fail when the dry mix does not fit under the max portion", func() {
			req.MinPortion = 0
			req.MaxPortion = intPtr(50)

			result, err := m.Mix(req)

			Expect(err).To(MatchError(ErrUnreachableMaxPortion))
			Expect(result).To(BeNil())
		})

		It("should fail when min portion exceeds max portion", func() {
			req.MinPortion = 300
			req.MaxPortion = intPtr(200)

			_, err := m.Mix(req)

			Expect(err).To(MatchError(ErrInfeasibleBounds))
		})

		It("should report infeasible bounds before anything else", func() {
			req.MinPortion = 300
			req.MaxPortion = intPtr(200)
			req.FinalPortions = 0
			req.MaxSoylent = -1

			_, err := m.Mix(req)

			Expect(err).To(MatchError(ErrInfeasibleBounds))
		})
	})

	Context("when there are no carbs", func() {
		It("should mark the next carb level as not applicable", func() {
			req = models.DefaultMixRequest(900, 3)
			req.MaxCarbsPerPortion = 0

			result, err := m.Mix(req)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.SoylentDryMass).To(Equal(0))
			Expect(result.CarbsPerPortion).To(Equal(0.0))
			Expect(result.NextCarbLevel).To(BeNil())
			Expect(result.NextCarbLevelMass).To(BeNil())
			Expect(result.TotalCalories).To(Equal(900))
		})
	})

	Context("with invalid requests", func() {
		It("should reject zero portions", func() {
			req.FinalPortions = 0
			_, err := m.Mix(req)
			Expect(err).To(MatchError(ErrInvalidRequest))
		})

		It("should reject negative calories", func() {
			req.TotalCalories = -1
			_, err := m.Mix(req)
			Expect(err).To(MatchError(ErrInvalidRequest))
		})

		It("should reject a negative min portion", func() {
			req.MinPortion = -5
			_, err := m.Mix(req)
			Expect(err).To(MatchError(ErrInvalidRequest))
		})

		It("should reject negative caps", func() {
			req.MaxHLTHCode = -1
			_, err := m.Mix(req)
			Expect(err).To(MatchError(ErrInvalidRequest))

			req.MaxHLTHCode = math.Inf(1)
			req.MaxCarbsPerPortion = math.NaN()
			_, err = m.Mix(req)
			Expect(err).To(MatchError(ErrInvalidRequest))
		})
	})

	Context("across a range of requests", func() {
		It("should hold the mass, cap and carb invariants", func() {
			for _, calories := range []int{0, 400, 1250, 2000, 2700, 3333} {
				for _, portions := range []int{1, 2, 3, 4, 7} {
					for _, caps := range []struct {
						soylent, hlth, carbs float64
						min                  int
						max                  *int
					}{
						{math.Inf(1), math.Inf(1), 12, 270, nil},
						{100, math.Inf(1), 12, 0, nil},
						{math.Inf(1), 80, 5, 150, nil},
						{200, 200, 20, 0, intPtr(2000)},
						{math.Inf(1), math.Inf(1), 12, 300, intPtr(1000)},
					} {
						r := models.DefaultMixRequest(calories, portions)
						r.MaxSoylent, r.MaxHLTHCode, r.MaxCarbsPerPortion = caps.soylent, caps.hlth, caps.carbs
						r.MinPortion, r.MaxPortion = caps.min, caps.max

						result, err := m.Mix(r)
						if err != nil {
							Expect(err).To(MatchError(ErrUnreachableMaxPortion), "request %+v", r)
							continue
						}

						Expect(math.Abs(float64(result.MassPerPortion*portions-result.TotalMass))).
							To(BeNumerically("<=", portions), "request %+v", r)
						Expect(float64(result.SoylentDryMass)).To(BeNumerically("<=", caps.soylent+1))
						Expect(float64(result.HLTHCodeDryMass)).To(BeNumerically("<=", caps.hlth+1))
						Expect(result.CarbsPerPortion).To(BeNumerically("<=", caps.carbs+0.1))
						Expect(result.WaterMass).To(BeNumerically(">=", 0))
						Expect(result.MassPerPortion).To(BeNumerically(">=", caps.min))
						if caps.max != nil {
							Expect(result.MassPerPortion).To(BeNumerically("<=", *caps.max))
						}
					}
				}
			}
		})
	})
})

var _ = Describe("Rounding", func() {
	It("should round halves to even", func() {
		Expect(round(292.5)).To(Equal(292))
		Expect(round(293.5)).To(Equal(294))
		Expect(round(422.75)).To(Equal(423))
	})

	It("should round carbs to one decimal", func() {
		Expect(roundTenth(5.97)).To(Equal(6.0))
		Expect(roundTenth(12.0)).To(Equal(12.0))
	})
})
