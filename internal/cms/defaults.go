package cms

// DefaultSettings is returned whenever settings storage is empty or unreachable,
// and is what Init seeds on first start.
func DefaultSettings() Settings {
	return Settings{
		SiteName:         "RenonX",
		SiteDescription:  "Elite Cyber Security & Web Solutions",
		HeroHeadline:     "SYSTEMS BREACHED. SECURITY RESTORED.",
		HeroSubheadline:  "Hi, I'm Zidan Mahmud. I build high-performance web applications and dismantle vulnerabilities.",
		AboutBio:         "I am an Ethical Hacker and Full-Stack Developer with over 5 years of experience in securing digital environments. My mission is to build robust systems that stand the test of time and malicious intent.",
		YearsExperience:  5,
		MissionStatement: "To revolutionize digital safety through proactive defense and elegant engineering.",
		ContactEmail:     "contact@renonx.com",
		SocialLinks: SocialLinks{
			GitHub:   "https://github.com",
			LinkedIn: "https://linkedin.com",
			Twitter:  "https://twitter.com",
		},
	}
}

// DefaultSkills are seeded by Init.
func DefaultSkills() []Skill {
	return []Skill{
		{ID: "1", Name: "React/Next.js", Level: 95, Category: SkillWebDev},
		{ID: "2", Name: "Node.js/TypeScript", Level: 90, Category: SkillWebDev},
		{ID: "3", Name: "Penetration Testing", Level: 85, Category: SkillSecurity},
		{ID: "4", Name: "Network Security", Level: 88, Category: SkillSecurity},
		{ID: "5", Name: "Vulnerability Assessment", Level: 92, Category: SkillPentesting},
		{ID: "6", Name: "Metasploit/Nmap", Level: 80, Category: SkillPentesting},
		{ID: "7", Name: "Docker/K8s", Level: 75, Category: SkillTools},
	}
}

// DefaultProjects are seeded by Init.
func DefaultProjects() []Project {
	return []Project{
		{
			ID:          "p1",
			Title:       "SecureGate Firewall",
			Description: "A custom-built application-layer firewall with real-time packet inspection.",
			Category:    ProjectSecurity,
			ImageURL:    "https://picsum.photos/seed/sec/800/450",
			Link:        "#",
			Date:        "2023-10-12",
		},
		{
			ID:          "p2",
			Title:       "Nexus eCommerce",
			Description: "High-performance React marketplace with integrated Stripe and high security.",
			Category:    ProjectWebDev,
			ImageURL:    "https://picsum.photos/seed/web/800/450",
			Link:        "#",
			Date:        "2023-08-05",
		},
		{
			ID:          "p3",
			Title:       "AuthBypass Scanner",
			Description: "Automated script to detect insecure authentication implementation in legacy systems.",
			Category:    ProjectPentesting,
			ImageURL:    "https://picsum.photos/seed/pen/800/450",
			Link:        "#",
			Date:        "2024-01-20",
		},
	}
}

// DefaultBlogs are seeded by Init.
func DefaultBlogs() []Blog {
	return []Blog{
		{
			ID:       "b1",
			Title:    "The Future of Zero Trust Architecture",
			Excerpt:  "Why traditional perimeter defenses are failing and how Zero Trust saves enterprises.",
			Content:  "Full article content about Zero Trust...",
			Author:   "Zidan Mahmud",
			Date:     "2024-02-15",
			Tags:     []string{"Security", "Cloud"},
			ImageURL: "https://picsum.photos/seed/blog1/800/450",
		},
		{
			ID:       "b2",
			Title:    "React 19 Security Best Practices",
			Excerpt:  "Deep dive into server actions and data sanitization in the latest React version.",
			Content:  "Full article content about React security...",
			Author:   "Zidan Mahmud",
			Date:     "2024-03-01",
			Tags:     []string{"Web Dev", "React"},
			ImageURL: "https://picsum.photos/seed/blog2/800/450",
		},
	}
}
