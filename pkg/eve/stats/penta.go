// Copyright © 2023 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package stats

import "math"

// pentanomial holds the measured probabilities of the five game pair
// results, smoothed by half a pair each.
type pentanomial struct {
	ll, ld, dd, wd, ww float64
	n                  float64
}

func newPentanomial(lls, lds, dds, wds, wws int) pentanomial {
	N := float64(lls+lds+dds+wds+wws) + 2.5 // total number of pairs

	return pentanomial{
		ll: (float64(lls) + 0.5) / N, // measured loss-loss probability
		ld: (float64(lds) + 0.5) / N, // measured loss-draw probability
		dd: (float64(dds) + 0.5) / N, // measured win-loss/draw-draw probability
		wd: (float64(wds) + 0.5) / N, // measured win-draw probability
		ww: (float64(wws) + 0.5) / N, // measured win-win probability
		n:  N,
	}
}

func (p pentanomial) mean() float64 {
	return p.ww + 0.75*p.wd + 0.5*p.dd + 0.25*p.ld
}

// variance returns the variance of the pair score around mu.
func (p pentanomial) variance(mu float64) float64 {
	return p.ww*math.Pow(1-mu, 2) +
		p.wd*math.Pow(0.75-mu, 2) +
		p.dd*math.Pow(0.50-mu, 2) +
		p.ld*math.Pow(0.25-mu, 2) +
		p.ll*math.Pow(0.00-mu, 2)
}

// PentaSPRT takes the results of the game pairs and the two elo hypotheses
// and returns a log-likelihood ratio which compares the fit of the two
// hypotheses to the provided game pair data using a pentanomial model. The
// elo hypotheses are normalized elo.
func PentaSPRT(lls, lds, dds, wds, wws int, elo0, elo1 float64) (llr float64) {
	p := newPentanomial(lls, lds, dds, wds, wws)

	// standard deviation (multiplied by sqrt of N) of the random variable
	r := math.Sqrt(p.variance(p.mean()))

	// convert elo bounds to score
	mu0 := nEloToScore(elo0, r)
	mu1 := nEloToScore(elo1, r)

	// deviation to the score bounds
	r0 := p.variance(mu0)
	r1 := p.variance(mu1)

	if r0 == 0 || r1 == 0 {
		return 0
	}

	// this is a close approximation of the exact llr, see
	// http://hardy.uhasselt.be/Fishtest/support_MLE_multinomial.pdf
	return 0.5 * p.n * math.Log(r0/r1)
}

// PentaElo calculates the best fit elo for the given game pair results
// using a pentanomial model, along with its 95% confidence interval.
func PentaElo(lls, lds, dds, wds, wws int) (lower float64, elo float64, upper float64) {
	p := newPentanomial(lls, lds, dds, wds, wws)

	mu := p.mean()
	sigma := math.Sqrt(p.variance(mu)) / math.Sqrt(p.n)

	return interval(mu, sigma)
}
